package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newGCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Run a garbage collection sweep over the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			report, err := c.app.GC(cmd.Context(), force)
			if err != nil {
				return err
			}
			if !report.Ran {
				cmd.Println("gc skipped: interval not elapsed (use --force to run anyway)")
				return nil
			}
			evicted := len(report.AgeEvicted) + len(report.SizeEvicted)
			cmd.Printf("gc done: evicted %d entries, freed %s, %s in store\n",
				evicted, formatBytes(report.BytesFreed), formatBytes(report.SizeAfter))
			for hash, ferr := range report.Failures {
				cmd.Printf("  failed to delete payload for %s: %v\n", hash, ferr)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Run even if the configured interval has not elapsed")
	return cmd
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

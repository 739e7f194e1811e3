package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Recompute checksums and purge corrupted entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Verify(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("verified %d entries, resolved %d pending digests\n",
				report.Checked, len(report.Resolved))
			if len(report.Purged) == 0 {
				cmd.Println("no corruption found")
				return nil
			}
			cmd.Printf("purged %d corrupted entries:\n", len(report.Purged))
			for _, hash := range report.Purged {
				cmd.Println("  " + hash)
			}
			return nil
		},
	}
}

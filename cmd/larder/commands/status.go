package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current state of the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.app.Status()
			if err != nil {
				return err
			}
			cmd.Printf("root:       %s\n", status.Root)
			cmd.Printf("entries:    %d\n", status.Entries)
			cmd.Printf("data sets:  %d\n", status.DataSets)
			cmd.Printf("total size: %s\n", formatBytes(status.TotalSize))
			if status.LastGCRun.IsZero() {
				cmd.Println("last gc:    never")
			} else {
				cmd.Printf("last gc:    %s\n", status.LastGCRun.Format("2006-01-02 15:04:05"))
			}
			if status.GCEnabled {
				cmd.Printf("auto gc:    every %s\n", status.GCInterval)
			} else {
				cmd.Println("auto gc:    disabled")
			}
			for _, ds := range status.DataSetRefs {
				cmd.Printf("  %s: %d entries\n", ds.ID, ds.Entries)
			}
			return nil
		},
	}
}

package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the store index and all payload files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return zerr.New("reset is destructive, pass --force to confirm")
			}
			if err := c.app.Reset(); err != nil {
				return err
			}
			cmd.Println("store reset")
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Confirm wiping the store")
	return cmd
}

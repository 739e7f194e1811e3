package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/larder/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("larder version %s\n", build.Version)
		},
	}
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [paths...]",
		Short: "Browse testing keys interactively",
		Long:  viewLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.View(context.Background(), scanArgsFromConfig(args, false))
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

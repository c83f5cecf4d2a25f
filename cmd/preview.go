package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"keylens.dev/pkg/keylens/internal/domain"
)

// previewCmd represents the preview command.
var previewCmd = newPreviewCmd()

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <key>",
		Short: "Show the widget preview tree for a testing key",
		Long: `Render the preview description tree for one testing key. The key must
exist in the scanned sources (or the saved index).`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Preview(context.Background(), domain.PreviewArgs{
				ScanArgs: scanArgsFromConfig(nil, true),
				Key:      args[0],
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

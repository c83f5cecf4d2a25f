package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"keylens.dev/pkg/keylens/internal/domain"
)

var watchDebounceFlag time.Duration

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-index testing keys on source changes",
		Long:  watchLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := workflow.Watch(ctx, domain.WatchArgs{
				ScanArgs: scanArgsFromConfig(args, false),
				Debounce: viper.GetDuration(debounceConfigKey),
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}

	configureWatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func configureWatchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&watchDebounceFlag, debounceFlagName, viper.GetDuration(debounceConfigKey), "settle time before a re-scan after changes")
	bindFlagToConfig(cmd.Flags().Lookup(debounceFlagName), debounceConfigKey)
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listCachedFlag bool

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List testing keys with widget archetypes",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			useCache := viper.GetBool(cachedConfigKey)

			return workflow.List(context.Background(), scanArgsFromConfig(args, useCache))
		},
	}

	configureListFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func configureListFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&listCachedFlag, cachedFlagName, viper.GetBool(cachedConfigKey), "reuse the saved index instead of rescanning")
	bindFlagToConfig(cmd.Flags().Lookup(cachedFlagName), cachedConfigKey)
}

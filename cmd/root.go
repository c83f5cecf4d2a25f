// Package cmd provides the root command and CLI setup for keylens.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"keylens.dev/pkg/keylens/internal/adapter"
	"keylens.dev/pkg/keylens/internal/controller"
	"keylens.dev/pkg/keylens/internal/domain"
	m "keylens.dev/pkg/keylens/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var dartAdapter adapter.DartFileAdapter
var indexStore adapter.KeyIndexStore
var previewSource adapter.PreviewDataSource
var ui domain.UI
var workflow domain.Workflow

// indexDirFlag is a root-level flag shared by commands that read/write the index.
var indexDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// parallelFlag bounds concurrent file extraction.
var parallelFlag int

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	dartAdapter = adapter.NewLocalDartFileAdapter()
	indexStore = adapter.NewLocalKeyIndexStore()
	previewSource = adapter.NewMockPreviewDataSource(domain.FormatDisplayName)
	ui = newUI(rootCmd)
	workflow = domain.NewWorkflow(
		fsAdapter,
		dartAdapter,
		indexStore,
		previewSource,
		ui,
	)
}

// newUI picks the interactive browser on a terminal and the plain writer
// everywhere else.
func newUI(cmd *cobra.Command) domain.UI {
	if controller.IsTTY(os.Stdout) {
		return controller.NewTUI(os.Stdout, previewSource)
	}

	return controller.NewSimpleUI(cmd)
}

const pathArgumentsHelp = `Paths may name Flutter project directories or single Dart files:
  - .                 scan the current project
  - lib/ test/        scan multiple directories
  - lib/login.dart    scan one file`

const rootLongDescription = `Keylens locates the testing keys (Key, ValueKey, find.byKey) in a Flutter
project's Dart source, guesses the widget type behind each key from its
name, and previews keys as widget description trees.

` + pathArgumentsHelp

const listLongDescription = `List every testing key with its widget archetype, file, and line.

` + pathArgumentsHelp

const viewLongDescription = `Browse testing keys interactively: move the selection, filter to
recognized widget types, and open a preview pane per key.

` + pathArgumentsHelp

const watchLongDescription = `Re-index and re-list testing keys whenever Dart sources change.

` + pathArgumentsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keylens",
		Short: "Flutter testing-key finder and previewer",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&indexDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for the key index",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers for extraction")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), parallelConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// scanArgsFromConfig assembles the scan arguments every command shares.
func scanArgsFromConfig(args []string, useCache bool) domain.ScanArgs {
	return domain.ScanArgs{
		Paths:    parsePaths(args),
		Exclude:  viper.GetStringSlice(excludeConfigKey),
		Parallel: viper.GetInt(parallelConfigKey),
		UseCache: useCache,
		IndexDir: m.Path(viper.GetString(outputFlagName)),
	}
}

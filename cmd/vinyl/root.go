package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var catalogFlags []string
	var inputModeFlag string
	var verboseFlag bool

	ctx := newCommandContext(&configFlag, &catalogFlags, &inputModeFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:           "vinyl",
		Short:         "Shuffle through a record collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureSettings()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return errors.New("the album browser needs a terminal; use \"vinyl pick\" or \"vinyl list\" in scripts")
			}
			return runBrowse(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringSliceVar(&catalogFlags, "catalog", nil, "Catalog URL (repeatable, overrides config)")
	rootCmd.PersistentFlags().StringVar(&inputModeFlag, "input", "", "Pointer input mode: auto, touch or mouse")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output (to stderr outside the browser)")

	rootCmd.AddCommand(newBrowseCommand(ctx))
	rootCmd.AddCommand(newPickCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/handiism/vinyl-shuffle/internal/logging"
	"github.com/handiism/vinyl-shuffle/internal/tui"
)

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive album browser",
		Long: `Open the interactive album browser.

Shuffle to another album by clicking "Another", pressing an arrow key or r,
or dragging the card sideways past the threshold. Space (or a click on the
vinyl) pauses the spinning record; s saves the albums seen so far as a
playlist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, ctx)
		},
	}
}

func runBrowse(cmd *cobra.Command, ctx *commandContext) error {
	settings, err := ctx.ensureSettings()
	if err != nil {
		return err
	}

	// The browser owns the terminal: only the configured log file is used.
	logger, logs, err := logging.NewFromSettings(settings)
	if err != nil {
		return err
	}
	defer logs.Close()
	return tui.Run(cmd.Context(), settings, logger)
}

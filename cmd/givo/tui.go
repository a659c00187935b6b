package main

import (
	"context"
	"fmt"

	"github.com/fentz26/givo/internal/app"
	"github.com/fentz26/givo/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive TUI",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Never log to stderr here; it would corrupt the alt screen.
	verbose = false
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if err := tui.New(a).Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})
}

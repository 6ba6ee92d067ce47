package main

import (
	"context"
	"fmt"

	"myhair/internal/config"
	"myhair/internal/router"
	"myhair/internal/telemetry"
	"myhair/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// runTUI opens the interactive app until the user quits.
func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	quietConsole()

	b, err := newBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	app := ui.NewApp(b.store, router.New(), b.client, ui.WithContext(ctx))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	stop := app.Watch(p.Send)
	defer stop()

	telemetry.LogInfo("Starting interactive session", "api_url", b.client.BaseURL)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}

// quietConsole sends logs to the log file only; the TUI owns the terminal,
// stderr included.
func quietConsole() {
	s := config.Current()
	telemetry.InitLogger(s.Verbose, s.LogFile, false)
}

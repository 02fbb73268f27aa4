package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quireapp/quire/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive library browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	model := ui.NewModel(store)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal UI and blocks until the player quits
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(New(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

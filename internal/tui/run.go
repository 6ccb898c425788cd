package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive search UI and blocks until the user quits.
// A search still running at exit is stopped and drained.
func Run(opts Options) error {
	m := NewModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(Model); ok && fm.events != nil {
		fm.engine.Stop()
		for range fm.events {
		}
	}
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// Package tui is the terminal frontend: a bubbletea program that draws the
// calibrated map in braille and feeds mouse and keyboard input to the
// interaction manager.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

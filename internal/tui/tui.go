// Package tui renders the managed desktop in a terminal: windows drawn as
// framed boxes, dragged and resized with the mouse, workspaces switched from
// the keyboard. It drives an in-process window store, so it doubles as a
// playground for the manager's policies without an X server.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/deskwm/internal/config"
)

// Run starts the desktop TUI and blocks until the user quits.
func Run(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

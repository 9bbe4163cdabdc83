package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/webshell/internal/shell"
)

// Client is the subset of the control-socket client the TUI drives.
type Client interface {
	ListWindows() ([]shell.WindowInfo, error)
	NewWindow() error
	CloseWindow(id shell.WindowID) error
	SetTitle(id shell.WindowID, title string) error
}

// TUI is an interactive window list for a running webshell.
type TUI struct {
	client Client
}

// New creates a TUI backed by client.
func New(client Client) *TUI {
	return &TUI{client: client}
}

// Run blocks until the user quits.
func (t *TUI) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(t.client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

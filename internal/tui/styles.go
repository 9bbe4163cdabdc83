package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	onlineDot  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	offlineDot = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
)

// renderStatusBar renders the connection status bar.
func renderStatusBar(connected bool, windows int, status string, width int) string {
	var parts []string
	if connected {
		parts = append(parts, onlineDot+" connected", fmt.Sprintf("windows:%d", windows))
	} else {
		parts = append(parts, offlineDot+" not running")
	}
	if status != "" {
		parts = append(parts, status)
	}
	return barStyle.Width(width).Render(strings.Join(parts, "  "))
}

// renderHelpBar renders the bottom keybinding bar.
func renderHelpBar(renaming bool, width int) string {
	help := "j/k: move  n: new  d: close  r: rename  g: refresh  q: quit"
	if renaming {
		help = "enter: apply  esc: cancel"
	}
	return helpStyle.Width(width).Render(help)
}

func renderPlaceholder(msg string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(lipgloss.Color("241")).
		Align(lipgloss.Center, lipgloss.Center).
		Render(msg)
}

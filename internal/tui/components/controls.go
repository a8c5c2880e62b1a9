package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/spotbar/internal/tui/styles"
)

// Controls renders the center transport buttons. Only play/pause is
// wired; shuffle, rewind, fast-forward and repeat are shown dimmed.
type Controls struct{}

// NewControls creates a new Controls component.
func NewControls() *Controls {
	return &Controls{}
}

// Render renders the buttons centered in width.
func (c *Controls) Render(playing bool, width int) string {
	buttons := []string{
		styles.Dim.Render("⇄"),
		styles.Dim.Render("⏪"),
		styles.StatusIcon(playing),
		styles.Dim.Render("⏩"),
		styles.Dim.Render("↺"),
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "   "))
}

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/spotbar/internal/tui/styles"
)

// Volume renders the right section: down button, slider, up button.
type Volume struct{}

// NewVolume creates a new Volume component.
func NewVolume() *Volume {
	return &Volume{}
}

// Render renders the volume section right-aligned in width. pending marks a
// value that has not been sent to the player yet.
func (v *Volume) Render(volume int, pending bool, width int) string {
	label := fmt.Sprintf("%3d%%", volume)
	if pending {
		label = styles.Dim.Render(label + "…")
	} else {
		label = styles.Muted.Render(label + " ")
	}

	// icons, spaces and the label take about 12 cells
	sliderWidth := width - 12
	if sliderWidth > 28 {
		sliderWidth = 28
	}
	if sliderWidth < 4 {
		sliderWidth = 4
	}

	row := fmt.Sprintf("%s %s %s %s", Icon(volume), styles.Slider(volume, sliderWidth), "🔊", label)

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		Render(row)
}

// Icon picks a speaker glyph for the volume level.
func Icon(volume int) string {
	switch {
	case volume < 1:
		return "🔇"
	case volume < 30:
		return "🔈"
	case volume < 80:
		return "🔉"
	default:
		return "🔊"
	}
}

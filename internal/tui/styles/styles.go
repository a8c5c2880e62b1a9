package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme provides.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Dim     lipgloss.Color
}

// SpotifyGreen is used for the playing state regardless of theme.
var SpotifyGreen = lipgloss.Color("#1DB954")

var (
	darkPalette = Palette{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Accent:  lipgloss.Color("#F59E0B"), // Amber
		Border:  lipgloss.Color("#4B5563"),
		Text:    lipgloss.Color("#F9FAFB"),
		Muted:   lipgloss.Color("#9CA3AF"),
		Dim:     lipgloss.Color("#6B7280"),
	}

	lightPalette = Palette{
		Primary: lipgloss.Color("#6D28D9"),
		Accent:  lipgloss.Color("#B45309"),
		Border:  lipgloss.Color("#D1D5DB"),
		Text:    lipgloss.Color("#111827"),
		Muted:   lipgloss.Color("#4B5563"),
		Dim:     lipgloss.Color("#9CA3AF"),
	}
)

// Text styles, rebuilt by Apply.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Dim      lipgloss.Style
	Playing  lipgloss.Style
	Paused   lipgloss.Style
	Bar      lipgloss.Style

	current Palette
)

func init() {
	Apply("dark")
}

// Apply switches the styles to the named theme: dark, light or auto.
func Apply(theme string) {
	switch theme {
	case "light":
		current = lightPalette
	case "auto":
		if lipgloss.HasDarkBackground() {
			current = darkPalette
		} else {
			current = lightPalette
		}
	default:
		current = darkPalette
	}

	Title = lipgloss.NewStyle().Bold(true).Foreground(current.Text)
	Subtitle = lipgloss.NewStyle().Foreground(current.Muted)
	Muted = lipgloss.NewStyle().Foreground(current.Muted)
	Dim = lipgloss.NewStyle().Foreground(current.Dim)
	Playing = lipgloss.NewStyle().Foreground(SpotifyGreen)
	Paused = lipgloss.NewStyle().Foreground(current.Accent)
	Bar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true, false, false, false).
		BorderForeground(current.Border).
		Padding(0, 1)
}

// Current returns the active palette.
func Current() Palette {
	return current
}

// Slider renders a horizontal slider filled to value out of 100.
func Slider(value, width int) string {
	if width < 1 {
		return ""
	}
	filled := value * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(current.Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(current.Border)

	return filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", width-filled))
}

// StatusIcon returns the play/pause button for the playing flag: a pause
// glyph while playing, a play glyph otherwise.
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("⏸")
	}
	return Paused.Render("▶")
}

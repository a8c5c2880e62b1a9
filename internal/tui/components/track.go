package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/spotbar/internal/core"
	"github.com/tessro/spotbar/internal/tui/styles"
)

// Track renders the left section: track name, first artist, album.
type Track struct{}

// NewTrack creates a new Track component.
func NewTrack() *Track {
	return &Track{}
}

// Render renders the track section. info may be nil while it is loading or
// when nothing is playing.
func (t *Track) Render(info *core.TrackInfo, width int) string {
	box := lipgloss.NewStyle().Width(width).MaxWidth(width)

	if info == nil {
		return box.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.Muted.Render("Nothing playing"),
			"",
		))
	}

	album := info.Album
	if album == "" {
		album = " "
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(truncate(info.Name, width)),
		styles.Subtitle.Render(truncate(info.Artist, width)),
		styles.Dim.Render(truncate(album, width)),
	))
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

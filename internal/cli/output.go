package cli

import "fmt"

// PlayIcon returns the transport glyph for the playing flag.
func PlayIcon(playing bool) string {
	if playing {
		return "▶"
	}
	return "⏸"
}

// YesNo renders a boolean for humans.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatDuration formats a duration in seconds as mm:ss or hh:mm:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

package styles

import (
	"strings"
	"testing"
)

func TestSliderFill(t *testing.T) {
	tests := []struct {
		value, width    int
		filled, empties int
	}{
		{0, 10, 0, 10},
		{50, 10, 5, 5},
		{100, 10, 10, 0},
		{150, 10, 10, 0},
		{-5, 10, 0, 10},
	}

	for _, tt := range tests {
		got := Slider(tt.value, tt.width)
		if n := strings.Count(got, "━"); n != tt.filled {
			t.Errorf("Slider(%d, %d) filled = %d, want %d", tt.value, tt.width, n, tt.filled)
		}
		if n := strings.Count(got, "─"); n != tt.empties {
			t.Errorf("Slider(%d, %d) empty = %d, want %d", tt.value, tt.width, n, tt.empties)
		}
	}
}

func TestSliderZeroWidth(t *testing.T) {
	if got := Slider(50, 0); got != "" {
		t.Errorf("Slider(50, 0) = %q, want empty", got)
	}
}

func TestApplyLight(t *testing.T) {
	defer Apply("dark")

	Apply("light")
	if Current() != lightPalette {
		t.Error("Apply(light) did not select the light palette")
	}
	Apply("nonsense")
	if Current() != darkPalette {
		t.Error("unknown theme should fall back to dark")
	}
}

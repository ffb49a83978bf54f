package collage

import (
	"image/color"
	"testing"
)

func TestParseGround(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"olive", color.NRGBA{58, 56, 32, 255}},
		{"dark", color.NRGBA{42, 40, 36, 255}},
		{"#B45A2D", Terracotta},
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		// malformed specs fall back to olive instead of failing
		{"", OliveGround},
		{"chartreuse", OliveGround},
		{"#ZZZZZZ", OliveGround},
		{"#FFF", OliveGround},
	}
	for _, tt := range tests {
		if got := ParseGround(tt.in); got != tt.want {
			t.Errorf("ParseGround(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAccentPaletteCrossMark(t *testing.T) {
	marks := 0
	for _, opt := range AccentPalette {
		if opt.CrossMark {
			marks++
		}
	}
	if marks != 1 {
		t.Errorf("AccentPalette has %d cross-mark entries, want 1", marks)
	}
}

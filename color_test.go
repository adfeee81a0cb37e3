package lsystem

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func colorsClose(a, b gg.RGBA) bool {
	const eps = 1.0 / 255
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps &&
		math.Abs(a.B-b.B) <= eps && math.Abs(a.A-b.A) <= eps
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want gg.RGBA
	}{
		{"black", gg.RGBA{A: 1}},
		{"White", gg.RGBA{R: 1, G: 1, B: 1, A: 1}},
		{"red", gg.RGBA{R: 1, A: 1}},
		{"#00ff00", gg.RGBA{G: 1, A: 1}},
		{"0000ff", gg.RGBA{B: 1, A: 1}},
		{"#f00", gg.RGBA{R: 1, A: 1}},
		{"#ff000080", gg.RGBA{R: 1, A: 128.0 / 255}},
		{"  #FFF  ", gg.RGBA{R: 1, G: 1, B: 1, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if !colorsClose(got, tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#gggggg", "notacolour", "#1234567"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrColor", in, err)
		}
	}
}

func TestFormatColor(t *testing.T) {
	tests := []struct {
		c    gg.RGBA
		want string
	}{
		{DefaultColor, "#000000ff"},
		{DefaultBackground, "#ffffffff"},
		{gg.RGBA{R: 1, G: 0.5, B: -1, A: 2}, "#ff8000ff"},
	}
	for _, tt := range tests {
		if got := FormatColor(tt.c); got != tt.want {
			t.Errorf("FormatColor(%+v) = %q, want %q", tt.c, got, tt.want)
		}
		if _, err := ParseColor(FormatColor(tt.c)); err != nil {
			t.Errorf("ParseColor(FormatColor(%+v)) error = %v", tt.c, err)
		}
	}
}

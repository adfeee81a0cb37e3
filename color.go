package lsystem

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// Default colours: figures are drawn in black on a white surface and erased
// by repainting them white.
var (
	DefaultColor      = gg.Black
	DefaultBackground = gg.White
)

// ParseColor parses a colour given as a hex string ("#RGB", "#RGBA",
// "#RRGGBB", "#RRGGBBAA", leading '#' optional) or an SVG colour name such
// as "black" or "cornflowerblue".
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return gg.RGBA{}, fmt.Errorf("%w: empty value", ErrColor)
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return gg.FromColor(c), nil
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return gg.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
		}
	}

	return gg.Hex(hex), nil
}

// FormatColor renders c as "#rrggbbaa".
func FormatColor(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B), to255(c.A))
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func to255(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

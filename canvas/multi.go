package canvas

import "github.com/gogpu/gg"

// Surface is the drawing interface shared by every canvas in this package.
type Surface interface {
	StrokeLine(from, to gg.Point, c gg.RGBA, width float64)
	Fill(c gg.RGBA)
}

// Multi forwards every call to each surface in order.
type Multi []Surface

// StrokeLine strokes the segment on every surface.
func (m Multi) StrokeLine(from, to gg.Point, c gg.RGBA, width float64) {
	for _, s := range m {
		s.StrokeLine(from, to, c, width)
	}
}

// Fill fills every surface.
func (m Multi) Fill(c gg.RGBA) {
	for _, s := range m {
		s.Fill(c)
	}
}

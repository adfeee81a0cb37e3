package lsystem

import "github.com/gogpu/gg"

// Stroke is a request to paint a line segment.
type Stroke struct {
	From, To gg.Point
	Color    gg.RGBA
	Width    float64
}

// Painter consumes strokes. The Renderer animates them onto a Canvas;
// tests record them.
type Painter interface {
	Paint(s Stroke)
}

// PainterFunc adapts a function to the Painter interface.
type PainterFunc func(Stroke)

// Paint calls f(s).
func (f PainterFunc) Paint(s Stroke) { f(s) }

// Canvas is a drawing surface. Implementations need not be safe for
// concurrent use: the Renderer serializes every call behind one lock.
type Canvas interface {
	// StrokeLine draws a straight line with the given colour and width.
	StrokeLine(from, to gg.Point, c gg.RGBA, width float64)

	// Fill paints the whole surface with c.
	Fill(c gg.RGBA)
}

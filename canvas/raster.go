package canvas

import (
	"image"
	"io"

	"github.com/gogpu/gg"
)

// Raster is a pixel surface backed by a gg.Context.
//
// Strokes use butt caps and round joins. Raster is not safe for concurrent
// use; the lsystem renderer serialises every call.
type Raster struct {
	dc  *gg.Context
	err error
}

// NewRaster creates a width×height surface filled with bg.
func NewRaster(width, height int, bg gg.RGBA) *Raster {
	dc := gg.NewContext(width, height)
	dc.SetLineCap(gg.LineCapButt)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.ClearWithColor(bg)
	return &Raster{dc: dc}
}

// StrokeLine strokes the segment from→to in colour c.
func (r *Raster) StrokeLine(from, to gg.Point, c gg.RGBA, width float64) {
	r.dc.SetRGBA(c.R, c.G, c.B, c.A)
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	if err := r.dc.Stroke(); err != nil && r.err == nil {
		r.err = err
	}
}

// Fill paints the whole surface with c.
func (r *Raster) Fill(c gg.RGBA) {
	r.dc.ClearWithColor(c)
}

// Err returns the first stroke error, if any.
func (r *Raster) Err() error {
	return r.err
}

// Width returns the surface width in pixels.
func (r *Raster) Width() int { return r.dc.Width() }

// Height returns the surface height in pixels.
func (r *Raster) Height() int { return r.dc.Height() }

// Image returns a snapshot of the pixels.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the surface as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// SavePNG writes the surface to a PNG file.
func (r *Raster) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// Close releases the underlying context.
func (r *Raster) Close() error {
	return r.dc.Close()
}

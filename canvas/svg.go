package canvas

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/gogpu/gg"
)

// svgScale is the fixed-point factor applied to coordinates and widths.
// svgo takes integer coordinates; the document is drawn at 100× and scaled
// back down with a group transform.
const svgScale = 100

type svgLine struct {
	seg   svgSegment
	width int
	style string
	ink   bool // false for opaque background-coloured strokes
	dead  bool
}

// svgSegment is a segment in fixed-point coordinates, endpoints ordered so
// that a segment and its reverse compare equal.
type svgSegment struct {
	x1, y1, x2, y2 int
}

func newSegment(from, to gg.Point) svgSegment {
	a := [2]int{fixed(from.X), fixed(from.Y)}
	b := [2]int{fixed(to.X), fixed(to.Y)}
	if b[0] < a[0] || (b[0] == a[0] && b[1] < a[1]) {
		a, b = b, a
	}
	return svgSegment{a[0], a[1], b[0], b[1]}
}

// SVG is a vector surface. It keeps the strokes painted since the last Fill
// and writes them as an SVG document on Encode.
//
// Strokes are never merged, so the document grows with every segment drawn.
// Erasing keeps it bounded: a stroke in the opaque background colour drops
// the earlier strokes on the same segment that it fully covers, and once no
// other colour is left the whole document collapses to the background.
type SVG struct {
	width, height int
	bg            string
	bgColor       gg.RGBA
	lines         []svgLine
	live          int
	dead          int
	inks          int
	index         map[svgSegment][]int // ink lines by segment
}

// NewSVG creates a width×height vector surface with background bg.
func NewSVG(width, height int, bg gg.RGBA) *SVG {
	s := &SVG{width: width, height: height}
	s.Fill(bg)
	return s
}

// StrokeLine records the segment from→to.
func (s *SVG) StrokeLine(from, to gg.Point, c gg.RGBA, width float64) {
	l := svgLine{
		seg:   newSegment(from, to),
		width: fixed(width),
		style: svgStroke(c, width),
		ink:   c != s.bgColor || s.bgColor.A < 1,
	}
	if l.ink {
		s.index[l.seg] = append(s.index[l.seg], len(s.lines))
		s.lines = append(s.lines, l)
		s.live++
		s.inks++
		return
	}

	s.erase(l.seg, l.width)
	if s.inks == 0 {
		// Background on background.
		s.reset()
		return
	}
	s.lines = append(s.lines, l)
	s.live++
	s.compact()
}

// erase drops the ink lines on seg no wider than width.
func (s *SVG) erase(seg svgSegment, width int) {
	idx := s.index[seg]
	kept := idx[:0]
	for _, i := range idx {
		if s.lines[i].width <= width {
			s.lines[i].dead = true
			s.live--
			s.dead++
			s.inks--
			continue
		}
		kept = append(kept, i)
	}
	if len(kept) == 0 {
		delete(s.index, seg)
	} else {
		s.index[seg] = kept
	}
}

// compact removes dead lines once they make up a quarter of the slice.
func (s *SVG) compact() {
	if s.dead < 64 || s.dead*4 < len(s.lines) {
		return
	}
	lines := s.lines[:0]
	clear(s.index)
	for _, l := range s.lines {
		if l.dead {
			continue
		}
		if l.ink {
			s.index[l.seg] = append(s.index[l.seg], len(lines))
		}
		lines = append(lines, l)
	}
	clear(s.lines[len(lines):])
	s.lines = lines
	s.dead = 0
}

func (s *SVG) reset() {
	clear(s.lines)
	s.lines = s.lines[:0]
	s.index = make(map[svgSegment][]int)
	s.live, s.dead, s.inks = 0, 0, 0
}

// Fill drops every recorded stroke and sets the background to c.
func (s *SVG) Fill(c gg.RGBA) {
	s.reset()
	s.bg = svgFill(c)
	s.bgColor = c
}

// Len returns the number of strokes the document currently holds.
func (s *SVG) Len() int {
	return s.live
}

// Encode writes the document to w.
func (s *SVG) Encode(w io.Writer) error {
	ew := &errWriter{w: w}
	doc := svg.New(ew)
	doc.Start(s.width, s.height)
	doc.Rect(0, 0, s.width, s.height, s.bg)
	doc.Scale(1.0 / svgScale)
	for _, l := range s.lines {
		if l.dead {
			continue
		}
		doc.Line(l.seg.x1, l.seg.y1, l.seg.x2, l.seg.y2, l.style)
	}
	doc.Gend()
	doc.End()
	return ew.err
}

func fixed(v float64) int {
	return int(math.Round(v * svgScale))
}

func svgFill(c gg.RGBA) string {
	rgb, a := hexRGB(c)
	return fmt.Sprintf("fill:%s;fill-opacity:%.3g", rgb, a)
}

func svgStroke(c gg.RGBA, width float64) string {
	rgb, a := hexRGB(c)
	return fmt.Sprintf("stroke:%s;stroke-opacity:%.3g;stroke-width:%d;stroke-linecap:butt;fill:none",
		rgb, a, fixed(width))
}

func hexRGB(c gg.RGBA) (string, float64) {
	n, _ := c.Color().(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}

// errWriter keeps the first write error; svgo itself does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	_, e.err = e.w.Write(p)
	return len(p), nil
}

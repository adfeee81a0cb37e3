package lsystem

import (
	"math"

	"github.com/gogpu/gg"
)

// Pt is a convenience function to create a point.
func Pt(x, y float64) gg.Point {
	return gg.Point{X: x, Y: y}
}

// polar returns the point length away from p in direction angle (radians,
// 0 pointing right, growing towards +Y).
func polar(p gg.Point, length, angle float64) gg.Point {
	return gg.Point{
		X: p.X + length*math.Cos(angle),
		Y: p.Y + length*math.Sin(angle),
	}
}

// nearlyEqual reports whether two points match within eps on both axes.
func nearlyEqual(p, q gg.Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

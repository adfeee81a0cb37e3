// Package lsystem grows animated L-system figures on a 2D canvas.
//
// # Overview
//
// A figure starts from a single axiom node placed where the user pressed.
// The family's rule table expands it breadth-first: each node may draw one
// segment and produces the children of the next wave, each a little smaller
// than its parent. Expansion stops when every size has decayed to zero, or
// when the run hits its node budget or its context is cancelled.
//
// Six families are built in: Original, Barnsley, FractalPlant, Lichtenberg,
// CrackedEarth and Porpita.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/lsystem"
//		"github.com/gogpu/lsystem/canvas"
//	)
//
//	surface := canvas.NewRaster(800, 600, lsystem.DefaultBackground)
//	e, err := lsystem.New(surface, lsystem.WithFamily(lsystem.Lichtenberg))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer e.Close()
//
//	e.Press(ctx, 400, 300)
//	e.Wait()
//	surface.SavePNG("lichtenberg.png")
//
// # Animation
//
// Segments are not painted at once. The Renderer splits a segment of width
// w into round(3w) increments and paints one per period on a shared worker
// pool, so thick strokes grow more slowly. WithTimeUnit(0) turns animation
// off, which is what tests and batch rendering use.
//
// # Erasing
//
// Each completed figure is pushed on a History. Release pops the most
// recent one and repaints every drawn segment in the background colour
// with the same width.
//
// # Logging
//
// The package is silent by default. Use SetLogger to receive structured
// logs through log/slog.
package lsystem

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

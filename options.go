package lsystem

import (
	"time"

	"github.com/gogpu/gg"
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures an Engine or Renderer during creation.
//
// Example:
//
//	e, err := lsystem.New(surface,
//	    lsystem.WithFamily(lsystem.Lichtenberg),
//	    lsystem.WithSeed(42),
//	)
type Option func(*options)

type options struct {
	seed         uint64
	seeded       bool
	background   gg.RGBA
	timeUnit     time.Duration
	workers      int
	maxNodes     int
	historyLimit int
	registerer   prometheus.Registerer
	config       Config
}

func defaultOptions() options {
	return options{
		background: DefaultBackground,
		timeUnit:   time.Millisecond,
		maxNodes:   DefaultMaxNodes,
		config: Config{
			Family:     Original,
			Color:      DefaultColor,
			StrokeSize: DefaultStrokeSize,
		},
	}
}

// WithSeed makes every generation run reproducible: run i of the engine
// draws from a PCG source seeded with (seed, i).
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithBackground sets the colour used by Clear and for erasing figures.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithTimeUnit sets the animation time unit. A stroke split into n
// increments paints one every n units and expires after n² units.
// Zero paints every stroke synchronously, without animation.
func WithTimeUnit(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.timeUnit = d
	}
}

// WithWorkers sets the number of paint workers. 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxNodes bounds the nodes a single generation run may create before
// it is aborted. Values <= 0 select DefaultMaxNodes.
func WithMaxNodes(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultMaxNodes
		}
		o.maxNodes = n
	}
}

// WithHistoryLimit caps the number of figures kept for erasing. When the cap
// is hit the oldest figure is forgotten, not erased. 0 means unlimited.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		o.historyLimit = n
	}
}

// WithRegisterer exports the engine's metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithFamily sets the initial family.
func WithFamily(f Family) Option {
	return func(o *options) {
		o.config.Family = f
	}
}

// WithColor sets the initial drawing colour.
func WithColor(c gg.RGBA) Option {
	return func(o *options) {
		o.config.Color = c
	}
}

// WithStrokeSize sets the initial stroke size.
func WithStrokeSize(n int) Option {
	return func(o *options) {
		o.config.StrokeSize = n
	}
}

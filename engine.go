package lsystem

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gogpu/gg"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/gogpu/lsystem"

// Config is the user-selectable drawing configuration. A press captures it
// once; changes only affect later presses.
type Config struct {
	Family     Family
	Color      gg.RGBA
	StrokeSize int
}

// Validate checks that the configuration can be handed to the core.
func (c Config) Validate() error {
	if !c.Family.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownFamily, uint8(c.Family))
	}
	if c.StrokeSize < MinStrokeSize || c.StrokeSize > MaxStrokeSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrStrokeSize, c.StrokeSize, MinStrokeSize, MaxStrokeSize)
	}
	return nil
}

// Engine turns presses into animated figures and releases into erasures.
//
// Press runs the selected family's rule engine synchronously and returns
// once every segment has been handed to the renderer; the animations keep
// running in the background. Release erases the most recent figure.
// Engine is safe for concurrent use.
type Engine struct {
	opts     options
	renderer *Renderer
	history  *History
	metrics  *metrics
	tracer   trace.Tracer

	mu     sync.Mutex
	cfg    Config
	runs   uint64
	closed bool
}

// New creates an engine drawing on c.
func New(c Canvas, opts ...Option) (*Engine, error) {
	if c == nil {
		return nil, fmt.Errorf("lsystem: nil canvas")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	m := newMetrics(o.registerer)
	return &Engine{
		opts:     o,
		renderer: newRenderer(c, &o, m),
		history:  NewHistory(o.historyLimit),
		metrics:  m,
		tracer:   otel.Tracer(tracerName),
		cfg:      o.config,
	}, nil
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetFamily selects the family used by the next press.
func (e *Engine) SetFamily(f Family) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownFamily, uint8(f))
	}
	e.mu.Lock()
	e.cfg.Family = f
	e.mu.Unlock()
	return nil
}

// SetColor selects the drawing colour used by the next press.
func (e *Engine) SetColor(c gg.RGBA) {
	e.mu.Lock()
	e.cfg.Color = c
	e.mu.Unlock()
}

// SetStrokeSize selects the stroke size, 1 to 10, used by the next press.
func (e *Engine) SetStrokeSize(n int) error {
	if n < MinStrokeSize || n > MaxStrokeSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrStrokeSize, n, MinStrokeSize, MaxStrokeSize)
	}
	e.mu.Lock()
	e.cfg.StrokeSize = n
	e.mu.Unlock()
	return nil
}

// Background returns the colour used by Clear and by erasing.
func (e *Engine) Background() gg.RGBA {
	return e.opts.background
}

// Press grows a figure of the configured family from (x, y).
//
// A run aborted early (node budget or ctx) is not an error: the figure is
// returned with Aborted set, stays on the canvas and can be erased.
func (e *Engine) Press(ctx context.Context, x, y float64) (*Figure, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	cfg := e.cfg
	idx := e.runs
	e.runs++
	e.mu.Unlock()

	family := cfg.Family.String()
	ctx, span := e.tracer.Start(ctx, "lsystem.Press", trace.WithAttributes(
		attribute.String("lsystem.family", family),
		attribute.Int("lsystem.stroke_size", cfg.StrokeSize),
		attribute.Float64("lsystem.x", x),
		attribute.Float64("lsystem.y", y),
	))
	defer span.End()

	start := time.Now()
	fig, err := Generate(ctx, Params{
		Family:   cfg.Family,
		Origin:   Pt(x, y),
		Color:    cfg.Color,
		Size:     float64(cfg.StrokeSize),
		Rand:     e.rand(idx),
		MaxNodes: e.opts.maxNodes,
	}, PainterFunc(e.renderer.Paint))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	e.metrics.duration.WithLabelValues(family).Observe(time.Since(start).Seconds())
	e.metrics.runs.WithLabelValues(family).Inc()
	e.metrics.nodes.WithLabelValues(family).Add(float64(fig.Nodes))
	e.metrics.strokes.WithLabelValues("draw").Add(float64(fig.Strokes))
	span.SetAttributes(
		attribute.Int("lsystem.nodes", fig.Nodes),
		attribute.Int("lsystem.strokes", fig.Strokes),
		attribute.Bool("lsystem.aborted", fig.Aborted),
	)

	if fig.Aborted {
		e.metrics.aborted.WithLabelValues(family).Inc()
		span.AddEvent("generation aborted", trace.WithAttributes(attribute.String("reason", fig.Err.Error())))
		Logger().Warn("lsystem: generation aborted",
			"family", family, "nodes", fig.Nodes, "strokes", fig.Strokes, "err", fig.Err)
	} else {
		Logger().Debug("lsystem: figure generated",
			"family", family, "nodes", fig.Nodes, "strokes", fig.Strokes)
	}

	// The depth gauge may be shared by several engines, so it only moves by
	// this engine's own pushes and pops.
	if evicted := e.history.Push(fig.Root); evicted != nil {
		Logger().Debug("lsystem: history full, oldest figure forgotten", "nodes", evicted.Count())
	} else {
		e.metrics.history.Inc()
	}
	return fig, nil
}

// rand returns the random source of run idx.
func (e *Engine) rand(idx uint64) *rand.Rand {
	if e.opts.seeded {
		return rand.New(rand.NewPCG(e.opts.seed, idx))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Release erases the most recent figure by repainting each of its drawn
// segments in the background colour. It reports false, painting nothing,
// when there is no figure to erase or the engine is closed.
func (e *Engine) Release(ctx context.Context) bool {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return false
	}

	root, ok := e.history.Pop()
	if !ok {
		return false
	}
	e.metrics.history.Dec()

	_, span := e.tracer.Start(ctx, "lsystem.Release")
	defer span.End()

	erased := 0
	bg := e.opts.background
	root.Walk(func(n *Node) bool {
		if n.Drawn {
			e.renderer.Paint(Stroke{From: n.Start, To: n.End, Color: bg, Width: n.Size})
			erased++
		}
		return true
	})

	e.metrics.strokes.WithLabelValues("erase").Add(float64(erased))
	span.SetAttributes(attribute.Int("lsystem.strokes", erased))
	Logger().Debug("lsystem: figure erased", "strokes", erased)
	return true
}

// Figures returns the number of figures that can still be erased.
func (e *Engine) Figures() int {
	return e.history.Len()
}

// Clear fills the whole canvas with the background colour. The history is
// left untouched.
func (e *Engine) Clear() {
	bg := e.opts.background
	e.renderer.Exclusive(func(c Canvas) {
		c.Fill(bg)
	})
}

// Exclusive runs fn with sole access to the canvas.
func (e *Engine) Exclusive(fn func(Canvas)) {
	e.renderer.Exclusive(fn)
}

// Wait blocks until every running animation has finished.
func (e *Engine) Wait() {
	e.renderer.Wait()
}

// Close cancels running animations and stops the engine. Later presses
// fail with ErrClosed, later releases report false and nothing more is
// painted.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.renderer.Close()
	return nil
}

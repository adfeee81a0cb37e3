package lsystem

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/lsystem/internal/parallel"
)

// Renderer paints strokes onto a Canvas progressively.
//
// A stroke of width w is split into Increments(w) equal sub-segments. They
// are painted one per firing of a periodic task whose period is the
// increment count in time units, and the task expires after the square of
// the increment count, so a stroke can never animate forever.
//
// Every canvas call, from any animation or from Exclusive, runs under one
// lock so colour and width changes of concurrent strokes never interleave.
type Renderer struct {
	canvas  Canvas
	mu      sync.Mutex
	sched   *parallel.Scheduler
	unit    time.Duration
	metrics *metrics
	closed  atomic.Bool
}

// NewRenderer creates a renderer drawing on c. It honours WithTimeUnit,
// WithWorkers and WithRegisterer.
func NewRenderer(c Canvas, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newRenderer(c, &o, newMetrics(o.registerer))
}

func newRenderer(c Canvas, o *options, m *metrics) *Renderer {
	r := &Renderer{
		canvas:  c,
		sched:   parallel.NewScheduler(o.workers),
		unit:    o.timeUnit,
		metrics: m,
	}
	r.sched.OnActivity(m.animations.Inc, m.animations.Dec)
	return r
}

// Increments returns the number of sub-segments a stroke of the given width
// is animated in: round(3·width), at least 1.
func Increments(width float64) int {
	n := int(math.Round(width * 3))
	if n < 1 {
		return 1
	}
	return n
}

// Paint schedules the animation of s and returns immediately. With a zero
// time unit the stroke is painted before Paint returns. A closed renderer
// drops the stroke.
func (r *Renderer) Paint(s Stroke) {
	if r.closed.Load() {
		Logger().Debug("lsystem: renderer closed, stroke dropped")
		return
	}
	n := Increments(s.Width)
	step := s.To.Sub(s.From).Div(float64(n))
	cur := s.From
	paintNext := func(i int) {
		next := cur.Add(step)
		if i == n-1 {
			next = s.To
		}
		r.paint(cur, next, s.Color, s.Width)
		cur = next
	}

	if r.unit <= 0 {
		for i := range n {
			paintNext(i)
		}
		return
	}

	ok := r.sched.Schedule(parallel.Task{
		Period:   time.Duration(n) * r.unit,
		Lifetime: time.Duration(n*n) * r.unit,
		Steps:    n,
		Step:     paintNext,
		Expired: func(skipped int) {
			r.metrics.dropped.Add(float64(skipped))
			Logger().Debug("lsystem: stroke animation expired", "skipped", skipped, "increments", n)
		},
	})
	if !ok {
		Logger().Debug("lsystem: renderer closed, stroke dropped")
	}
}

// paint draws one sub-segment. The lock covers exactly the canvas call,
// which sets colour and width and strokes.
func (r *Renderer) paint(from, to gg.Point, c gg.RGBA, width float64) {
	r.mu.Lock()
	if r.closed.Load() {
		r.mu.Unlock()
		return
	}
	r.canvas.StrokeLine(from, to, c, width)
	r.mu.Unlock()
	r.metrics.paints.Inc()
}

// Exclusive runs fn with sole access to the canvas, e.g. to clear it or to
// encode a snapshot while animations are running.
func (r *Renderer) Exclusive(fn func(Canvas)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.canvas)
}

// Active returns the number of stroke animations in flight.
func (r *Renderer) Active() int {
	return r.sched.Active()
}

// Wait blocks until every scheduled animation has finished or expired.
func (r *Renderer) Wait() {
	r.sched.Wait()
}

// Close cancels running animations and releases the paint workers. No
// stroke is painted once Close has returned.
func (r *Renderer) Close() {
	r.mu.Lock()
	r.closed.Store(true)
	r.mu.Unlock()
	r.sched.Close()
}

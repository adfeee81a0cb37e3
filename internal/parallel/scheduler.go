package parallel

import (
	"context"
	"sync"
	"time"
)

// Task is a periodic job with a bounded lifetime.
//
// Step is called with i = 0..Steps-1: the first call happens immediately,
// each following one Period later. The task ends after the last step or when
// Lifetime elapses, whichever comes first. Steps of one task never overlap.
type Task struct {
	Period   time.Duration
	Lifetime time.Duration
	Steps    int
	Step     func(i int)

	// Expired, if set, is called with the number of steps that were not run
	// because the lifetime ran out or the scheduler was closed.
	Expired func(skipped int)
}

// Scheduler runs Tasks, each on its own timer goroutine, and executes every
// step on a shared WorkerPool. Submission is unbounded; every task's lifetime
// is bounded by its own cancellation context.
type Scheduler struct {
	pool   *WorkerPool
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	idle    *sync.Cond // signalled when running drops to zero
	running int
	closed  bool
	onStart func()
	onEnd   func()
}

// NewScheduler creates a scheduler backed by a pool of the given size.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewScheduler(workers int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		pool:   NewWorkerPool(workers),
		ctx:    ctx,
		cancel: cancel,
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// OnActivity installs hooks called when a task starts and when it ends.
// It must be called before the first Schedule.
func (s *Scheduler) OnActivity(start, end func()) {
	s.onStart = start
	s.onEnd = end
}

// Schedule starts t. It reports false if the scheduler is closed or t has no
// steps.
func (s *Scheduler) Schedule(t Task) bool {
	if t.Steps <= 0 || t.Step == nil {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.running++
	s.mu.Unlock()

	if s.onStart != nil {
		s.onStart()
	}
	go s.run(t)
	return true
}

func (s *Scheduler) run(t Task) {
	defer func() {
		if s.onEnd != nil {
			s.onEnd()
		}
		s.mu.Lock()
		s.running--
		if s.running == 0 {
			s.idle.Broadcast()
		}
		s.mu.Unlock()
	}()

	ctx := s.ctx
	if t.Lifetime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Lifetime)
		defer cancel()
	}

	var tick <-chan time.Time
	if t.Steps > 1 {
		period := t.Period
		if period <= 0 {
			period = time.Nanosecond
		}
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for i := range t.Steps {
		if i > 0 {
			select {
			case <-ctx.Done():
				s.expire(t, i)
				return
			case <-tick:
			}
		}
		if ctx.Err() != nil || !s.pool.Run(func() { t.Step(i) }) {
			s.expire(t, i)
			return
		}
	}
}

func (s *Scheduler) expire(t Task, done int) {
	if t.Expired != nil {
		t.Expired(t.Steps - done)
	}
}

// Active returns the number of tasks currently running.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Wait blocks until no task is running. Tasks may be scheduled while Wait
// is blocked; Wait then also waits for them.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	for s.running > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
}

// Close cancels outstanding tasks, waits for them and stops the pool.
// Close is safe to call multiple times.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.Wait()
	s.pool.Close()
}

package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool executes short paint jobs on a fixed set of goroutines.
//
// Jobs are distributed round-robin over per-worker queues. An idle worker
// steals from its neighbours before blocking on its own queue, so a burst of
// jobs landing on one queue does not wait behind a busy worker.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one buffered channel per worker.
	queues []chan func()

	// next is the round-robin cursor used by Submit.
	next atomic.Uint64

	// mu orders Submit against Close so that no job is queued after the
	// workers drained their queues.
	mu      sync.RWMutex
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			job()
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			job()
			continue
		}

		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			job()
		}
	}
}

// drain runs whatever is still buffered in q.
func drain(q chan func()) {
	for {
		select {
		case job := <-q:
			job()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Submit queues fn without waiting for it. It reports false if the pool is
// closed or fn is nil. Jobs must not call Submit themselves.
func (p *WorkerPool) Submit(fn func()) bool {
	if fn == nil {
		return false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return false
	}

	p.queues[p.next.Add(1)%uint64(p.workers)] <- fn
	return true
}

// Run executes fn on a worker and blocks until it returns.
// It reports false, without running fn, if the pool is closed.
func (p *WorkerPool) Run(fn func()) bool {
	if fn == nil {
		return false
	}

	finished := make(chan struct{})
	if !p.Submit(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}

	// Close drains queued jobs, so a submitted job always completes.
	<-finished
	return true
}

// Close stops accepting jobs, runs the ones already queued and waits for the
// workers to exit. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts jobs.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// Queued returns the approximate number of jobs waiting in the queues.
func (p *WorkerPool) Queued() int {
	total := 0
	for _, q := range p.queues {
		total += len(q)
	}
	return total
}

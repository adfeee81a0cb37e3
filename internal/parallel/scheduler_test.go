package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// Scheduler Tests
// =============================================================================

func TestScheduler_RunsAllSteps(t *testing.T) {
	s := NewScheduler(2)
	defer s.Close()

	var mu sync.Mutex
	var steps []int
	ok := s.Schedule(Task{
		Period:   time.Millisecond,
		Lifetime: time.Second,
		Steps:    5,
		Step: func(i int) {
			mu.Lock()
			steps = append(steps, i)
			mu.Unlock()
		},
	})
	if !ok {
		t.Fatal("Schedule() = false on an open scheduler")
	}
	s.Wait()

	if len(steps) != 5 {
		t.Fatalf("ran %d steps, want 5", len(steps))
	}
	for i, v := range steps {
		if v != i {
			t.Errorf("steps[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestScheduler_LifetimeCutsTask(t *testing.T) {
	s := NewScheduler(1)
	defer s.Close()

	var ran atomic.Int64
	var skipped atomic.Int64
	s.Schedule(Task{
		Period:   50 * time.Millisecond,
		Lifetime: 10 * time.Millisecond,
		Steps:    10,
		Step:     func(int) { ran.Add(1) },
		Expired:  func(n int) { skipped.Add(int64(n)) },
	})
	s.Wait()

	if ran.Load() != 1 {
		t.Errorf("ran %d steps, want 1 (first step is immediate)", ran.Load())
	}
	if skipped.Load() != 9 {
		t.Errorf("skipped = %d, want 9", skipped.Load())
	}
}

func TestScheduler_RejectsEmptyTask(t *testing.T) {
	s := NewScheduler(1)
	defer s.Close()

	if s.Schedule(Task{Steps: 0, Step: func(int) {}}) {
		t.Error("Schedule() with zero steps = true, want false")
	}
	if s.Schedule(Task{Steps: 3}) {
		t.Error("Schedule() without Step = true, want false")
	}
}

func TestScheduler_CloseCancelsTasks(t *testing.T) {
	s := NewScheduler(1)

	var ran atomic.Int64
	s.Schedule(Task{
		Period:   time.Hour,
		Lifetime: time.Hour,
		Steps:    3,
		Step:     func(int) { ran.Add(1) },
	})

	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close() did not cancel a long-running task")
	}
	if ran.Load() > 1 {
		t.Errorf("ran %d steps, want at most 1", ran.Load())
	}
	if s.Schedule(Task{Steps: 1, Step: func(int) {}}) {
		t.Error("Schedule() after Close = true, want false")
	}
}

func TestScheduler_ActivityHooks(t *testing.T) {
	s := NewScheduler(2)
	defer s.Close()

	var started, ended atomic.Int64
	s.OnActivity(func() { started.Add(1) }, func() { ended.Add(1) })

	for range 10 {
		s.Schedule(Task{Steps: 2, Period: time.Millisecond, Step: func(int) {}})
	}
	s.Wait()

	if started.Load() != 10 || ended.Load() != 10 {
		t.Errorf("started=%d ended=%d, want 10/10", started.Load(), ended.Load())
	}
	if s.Active() != 0 {
		t.Errorf("Active() = %d after Wait, want 0", s.Active())
	}
}

func TestScheduler_ScheduleDuringWait(t *testing.T) {
	s := NewScheduler(4)
	defer s.Close()

	var ran atomic.Int64
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				s.Schedule(Task{
					Period:   10 * time.Microsecond,
					Lifetime: time.Second,
					Steps:    3,
					Step:     func(int) { ran.Add(1) },
				})
				s.Wait()
			}
		}()
	}
	wg.Wait()
	s.Wait()

	if ran.Load() != 4*50*3 {
		t.Errorf("ran %d steps, want %d", ran.Load(), 4*50*3)
	}
	if s.Active() != 0 {
		t.Errorf("Active() = %d after Wait, want 0", s.Active())
	}
}

func TestScheduler_WaitWithoutTasks(t *testing.T) {
	s := NewScheduler(1)
	defer s.Close()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() blocked on an idle scheduler")
	}
}

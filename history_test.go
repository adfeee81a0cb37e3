package lsystem

import (
	"sync"
	"testing"
)

func TestHistory_LIFO(t *testing.T) {
	h := NewHistory(0)
	a, b := &Node{Symbol: 'a'}, &Node{Symbol: 'b'}
	h.Push(a)
	h.Push(b)

	if got, ok := h.Pop(); !ok || got != b {
		t.Errorf("first Pop() = %v, %v; want b", got, ok)
	}
	if got, ok := h.Pop(); !ok || got != a {
		t.Errorf("second Pop() = %v, %v; want a", got, ok)
	}
	if _, ok := h.Pop(); ok {
		t.Error("Pop() on empty history reported ok")
	}
}

func TestHistory_LimitEvictsOldest(t *testing.T) {
	h := NewHistory(2)
	nodes := []*Node{{Symbol: '1'}, {Symbol: '2'}, {Symbol: '3'}}

	for i, n := range nodes[:2] {
		if ev := h.Push(n); ev != nil {
			t.Fatalf("push %d evicted %v", i, ev)
		}
	}
	if ev := h.Push(nodes[2]); ev != nodes[0] {
		t.Errorf("evicted %v, want oldest", ev)
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	if got, _ := h.Pop(); got != nodes[2] {
		t.Errorf("Pop() = %v, want most recent", got)
	}
}

func TestHistory_Concurrent(t *testing.T) {
	h := NewHistory(0)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Push(&Node{})
		}()
	}
	wg.Wait()
	if h.Len() != 50 {
		t.Errorf("Len() = %d, want 50", h.Len())
	}
}

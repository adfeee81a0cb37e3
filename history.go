package lsystem

import "sync"

// History is the stack of completed figures, most recent on top.
// It is safe for concurrent use.
type History struct {
	mu    sync.Mutex
	roots []*Node
	limit int
}

// NewHistory returns an empty history holding at most limit figures;
// limit <= 0 means unlimited.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records root as the most recent figure. If the history is full the
// oldest figure is dropped and returned.
func (h *History) Push(root *Node) (evicted *Node) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.limit > 0 && len(h.roots) >= h.limit {
		evicted = h.roots[0]
		h.roots[0] = nil
		h.roots = h.roots[1:]
	}
	h.roots = append(h.roots, root)
	return evicted
}

// Pop removes and returns the most recent figure. ok is false when the
// history is empty.
func (h *History) Pop() (root *Node, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.roots) == 0 {
		return nil, false
	}
	last := len(h.roots) - 1
	root = h.roots[last]
	h.roots[last] = nil
	h.roots = h.roots[:last]
	return root, true
}

// Len returns the number of figures recorded.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.roots)
}

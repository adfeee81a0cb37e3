package lsystem

// queue is the FIFO of nodes waiting to be drawn and expanded during one
// generation run. Nodes come out in the order they were attached, so a whole
// generation is processed before the next one starts.
type queue struct {
	items []*Node
	head  int
}

func (q *queue) push(n *Node) {
	q.items = append(q.items, n)
}

func (q *queue) pop() *Node {
	n := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 1024 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return n
}

func (q *queue) len() int {
	return len(q.items) - q.head
}

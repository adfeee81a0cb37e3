package lsystem

import "github.com/gogpu/gg"

// Node is one symbol instance in a figure's expansion tree.
//
// A node is created by a rule engine, has End filled in by the draw step,
// and is read-only afterwards. Children are owned exclusively by their
// parent; the tree has no shared nodes and no cycles.
type Node struct {
	// Symbol identifies the node's role in its family's grammar.
	Symbol byte

	// Size is the branch size. It shrinks every generation and expansion
	// stops on a path once it reaches zero.
	Size float64

	// Start is where the node's segment begins; End is where it ends.
	// End equals Start until the node is drawn.
	Start, End gg.Point

	// Aux carries family-specific state from parent to child: a drawing
	// angle for Barnsley, Lichtenberg, Cracked Earth and Porpita 'E' nodes,
	// a radial sector index for the other Porpita nodes.
	Aux float64

	// Drawn is set once the node's segment was emitted.
	Drawn bool

	Children []*Node
}

func newNode(symbol byte, start gg.Point, size float64) *Node {
	return &Node{
		Symbol: symbol,
		Size:   size,
		Start:  start,
		End:    start,
	}
}

// attach creates one child per symbol, in order, all sharing start, size
// and aux, and appends them to both n.Children and q.
func (n *Node) attach(q *queue, symbols string, start gg.Point, size, aux float64) {
	if symbols == "" {
		panic("lsystem: attach called with no symbols")
	}
	for i := 0; i < len(symbols); i++ {
		c := newNode(symbols[i], start, size)
		c.Aux = aux
		n.Children = append(n.Children, c)
		q.push(c)
	}
}

// Walk calls fn for n and every descendant, depth first, parents before
// children. If fn returns false the node's subtree is skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}

// Segment is a drawn line of a figure.
type Segment struct {
	From, To gg.Point
	Width    float64
}

// Segments returns the segments of every drawn node, in Walk order.
func (n *Node) Segments() []Segment {
	var out []Segment
	n.Walk(func(c *Node) bool {
		if c.Drawn {
			out = append(out, Segment{From: c.Start, To: c.End, Width: c.Size})
		}
		return true
	})
	return out
}

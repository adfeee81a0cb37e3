package lsystem

// draw resolves n into a segment of the given length and angle starting at
// n.Start, stores the end point on n and hands the stroke to the painter.
// It is the only place a node's End changes after construction.
func (r *run) draw(n *Node, length, angle float64) {
	n.End = polar(n.Start, length, angle)
	n.Drawn = true
	r.strokes++
	r.painter.Paint(Stroke{
		From:  n.Start,
		To:    n.End,
		Color: r.color,
		Width: n.Size,
	})
}

package lsystem

import "math"

// Lichtenberg figure: a cyclic system where each node always grows its
// primary successor and, depending on one draw p per node, up to two more
// branches. 'L'/'J' turn one way and 'R'/'K' the other.
var lichtenbergGrammar = &grammar{
	axiom: 'L',
	shrink: func(og float64) float64 {
		return og / (8 - 0.05*og)
	},
	seed: seedAngle,
	rules: map[byte]rule{
		'L': {
			interpret: lichtenbergSegment(1, 1, 0.4, func(s float64) float64 { return math.Exp(2 + 0.4*s) }),
			produce:   lichtenbergBranch("R", "L", "K"),
		},
		'R': {
			interpret: lichtenbergSegment(-1, 1.57080, 0.4, func(s float64) float64 { return 2 + 0.4*s*s }),
			produce:   lichtenbergBranch("L", "R", "J"),
		},
		'J': {
			interpret: lichtenbergSegment(1, quarterTurn, 0.2, func(s float64) float64 { return 1 + 0.1*s*s }),
			produce:   lichtenbergBranch("K", "J", ""),
		},
		'K': {
			interpret: lichtenbergSegment(-1, quarterTurn, 0.2, func(s float64) float64 { return 1.5 + 0.2*s*s }),
			produce:   lichtenbergBranch("J", "K", ""),
		},
	},
}

// lichtenbergSegment turns by sign·max(rf·scale, floor) from the inherited
// angle; the length is a common base plus a per-symbol extra.
func lichtenbergSegment(sign, scale, floor float64, extra func(float64) float64) func(*run, *Node) (float64, float64, bool) {
	return func(r *run, n *Node) (float64, float64, bool) {
		rf := r.rng.Float64()
		length := math.Exp(1+0.08*n.Size) + extra(n.Size)
		return length, n.Aux + sign*math.Max(rf*scale, floor), true
	}
}

// lichtenbergBranch always grows primary; it also grows second when p > 0.5
// and third, if any, when p < 0.8.
func lichtenbergBranch(primary, second, third string) func(*run, *Node, float64, float64) {
	return func(r *run, n *Node, size, angle float64) {
		p := r.rng.Float64()
		r.attach(n, primary, n.End, size, angle)
		if p > 0.5 {
			r.attach(n, second, n.End, size, angle)
		}
		if third != "" && p < 0.8 {
			r.attach(n, third, n.End, size, angle)
		}
	}
}

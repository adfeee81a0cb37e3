package lsystem

import "math"

// Fork offsets of the cracked earth system, in radians.
const (
	crackThird   = 2.09440 // 120°
	crackSixth   = 1.04720 // 60°
	crackTwelfth = 0.52360 // 30°
)

// Cracked earth: 'O' fans out three cracks 120° apart, 'T' forks at ±60°,
// 'R' forks, bends or turns into 'T', and 'S' runs straight. Only 'R' and
// 'S' draw. Children inherit the parent's aux angle plus an offset, not the
// angle the parent was drawn at.
var crackGrammar = &grammar{
	axiom:  'O',
	shrink: expShrink(-0.07),
	seed:   seedAngle,
	rules: map[byte]rule{
		'O': {
			produce: func(r *run, n *Node, size, _ float64) {
				for _, off := range [...]float64{0, crackThird, 2 * crackThird} {
					r.attach(n, "R", n.End, size, n.Aux+off)
				}
			},
		},
		'T': {
			produce: func(r *run, n *Node, size, _ float64) {
				jitter := 0.3
				if r.rng.Float64() > 0.5 {
					jitter = -0.3
				}
				angle := n.Aux + jitter
				r.attach(n, "R", n.End, size, angle-crackSixth)
				r.attach(n, "R", n.End, size, angle+crackSixth)
			},
		},
		'R': {
			interpret: func(r *run, n *Node) (float64, float64, bool) {
				return crackLength(n.Size) * 2 * math.Max(0.5, r.rng.Float64()), n.Aux, true
			},
			produce: func(r *run, n *Node, size, _ float64) {
				rf := r.rng.Float64()
				p := r.rng.Float64()
				switch {
				case p > 0.5 && p < 0.8:
					r.attach(n, "R", n.End, size, n.Aux-crackTwelfth)
					r.attach(n, "S", n.End, size, n.Aux+crackTwelfth)
				case p >= 0.8:
					turn := rf * 1.57080
					if rf > 0.5 {
						turn = -turn
					}
					r.attach(n, "R", n.End, size, n.Aux+turn)
				default:
					r.attach(n, "T", n.End, size, n.Aux)
				}
			},
		},
		'S': {
			interpret: func(r *run, n *Node) (float64, float64, bool) {
				bend := 0.3
				if r.rng.Float64() > 0.5 {
					bend = -0.3
				}
				return crackLength(n.Size), n.Aux + bend, true
			},
			produce: func(r *run, n *Node, size, _ float64) {
				r.attach(n, "S", n.End, size, n.Aux)
			},
		},
	},
}

func crackLength(size float64) float64 {
	return math.Exp(2 + 0.4*size)
}

package lsystem

import "math"

// Lindenmayer's original system: every node grows an 'A'; 'A' nodes also
// grow a 'B'. 'B' segments are longer and turn wider than 'A' segments.
var originalGrammar = &grammar{
	axiom:  'A',
	shrink: expShrink(-0.1),
	rules: map[byte]rule{
		'A': {
			interpret: func(r *run, n *Node) (float64, float64, bool) {
				return originalBase(n.Size) + math.Pow(n.Size, 1.618), originalAngle(r), true
			},
			produce: func(r *run, n *Node, size, _ float64) {
				r.attach(n, "AB", n.End, size, 0)
			},
		},
		'B': {
			interpret: func(r *run, n *Node) (float64, float64, bool) {
				return originalBase(n.Size) + math.Pow(n.Size, 3.236), 2.39996 * originalAngle(r), true
			},
			produce: func(r *run, n *Node, size, _ float64) {
				r.attach(n, "A", n.End, size, 0)
			},
		},
	},
}

func originalBase(size float64) float64 {
	return math.Exp(-0.1*size + 2.7)
}

func originalAngle(r *run) float64 {
	return r.rng.Float64() * math.Pi * 0.74163
}

// expShrink returns the decay og / exp(k·og + 2.7).
func expShrink(k float64) func(float64) float64 {
	return func(og float64) float64 {
		return og / math.Exp(k*og+2.7)
	}
}

package lsystem

import "math"

const quarterTurn = 0.78540

// Barnsley fern-ish system. '1' is the stem; '2'/'5' are right leaves and
// '3'/'4' left leaves. Leaves start behind their parent's end, pulled back
// along the parent's direction, so they sprout from inside the segment.
var barnsleyGrammar = &grammar{
	axiom: '1',
	shrink: func(og float64) float64 {
		return og / (6 - 0.05*og)
	},
	seed: seedAngle,
	rules: map[byte]rule{
		'1': {
			interpret: barnsleyLeaf(0, func(a, _ float64) float64 { return a + 0.03272 + 0.03272*a }),
			produce:   barnsleyProduce("123"),
		},
		'2': {
			interpret: barnsleyLeaf(1, func(a, _ float64) float64 { return a + quarterTurn }),
			produce:   barnsleyProduce("451"),
		},
		'3': {
			interpret: barnsleyLeaf(0.75, func(a, rf float64) float64 { return a - quarterTurn*rf }),
			produce:   barnsleyProduce("231"),
		},
		'4': {
			interpret: barnsleyLeaf(1, func(a, rf float64) float64 { return a - quarterTurn*rf }),
			produce:   barnsleyProduce("231"),
		},
		'5': {
			interpret: barnsleyLeaf(0.75, func(a, _ float64) float64 { return a + quarterTurn }),
			produce:   barnsleyProduce("451"),
		},
	},
}

// growthLength is the segment length shared by the fern and the plant.
func growthLength(size float64) float64 {
	return 2 * math.Max(math.Exp(1-0.03*size), math.Pow(size, 2.2))
}

// barnsleyLeaf moves the start back by the fraction back of the segment,
// measured along the inherited angle, then turns.
func barnsleyLeaf(back float64, turn func(angle, rf float64) float64) func(*run, *Node) (float64, float64, bool) {
	return func(r *run, n *Node) (float64, float64, bool) {
		rf := 2 * r.rng.Float64()
		length := growthLength(n.Size)
		if back != 0 {
			n.Start = polar(n.Start, -back*length, n.Aux)
		}
		return length, turn(n.Aux, rf), true
	}
}

func barnsleyProduce(symbols string) func(*run, *Node, float64, float64) {
	return func(r *run, n *Node, size, angle float64) {
		r.attach(n, symbols, n.End, size, angle)
	}
}

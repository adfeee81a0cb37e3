package lsystem

import "math"

const (
	porpitaArc     = 0.2 * math.Pi // one of ten sectors
	porpitaSectors = 10
)

// Porpita porpita: the axiom 'C' fans out ten 'L' floats, one per sector
// around the press point. Each 'L' starts a colony 'H' on a ring around the
// origin; 'H' repeats itself with "JK" tentacles and spawns an 'E' arm that
// keeps growing "JK" pairs. 'J' and 'K' are terminal.
//
// For L, H, J and K the aux value is a sector index; for E it is the angle
// the arm grows at.
var porpitaGrammar = &grammar{
	axiom:  'C',
	shrink: expShrink(-0.1),
	seed:   seedAngle,
	rules: map[byte]rule{
		'C': {
			produce: func(r *run, n *Node, size, _ float64) {
				for i := range porpitaSectors {
					r.attach(n, "L", n.End, size, float64(i))
				}
			},
		},
		'L': {
			interpret: func(r *run, n *Node) (float64, float64, bool) {
				return porpitaRadius(r.og), r.porpitaAngle(n.Aux), true
			},
			produce: func(r *run, n *Node, size, _ float64) {
				r.attach(n, "H", n.End, size, n.Aux)
			},
		},
		'H': {
			interpret: func(r *run, n *Node) (float64, float64, bool) {
				angle := r.porpitaAngle(n.Aux) + r.rng.Float64()*porpitaArc
				n.Start = polar(r.origin, porpitaRadius(r.og), angle)
				return math.Exp(1 + 0.2*n.Size), angle, true
			},
			produce: func(r *run, n *Node, size, angle float64) {
				r.attach(n, "HJK", n.End, size, n.Aux)
				r.attach(n, "E", n.End, size, angle)
			},
		},
		'E': {
			interpret: func(r *run, n *Node) (float64, float64, bool) {
				rf := r.rng.Float64()
				if n.Aux < math.Pi {
					rf = -rf
				}
				return math.Exp(3 - 0.05*n.Size), n.Aux + rf*0.4, true
			},
			produce: func(r *run, n *Node, size, angle float64) {
				r.attach(n, "JK", n.End, size, n.Aux)
				r.attach(n, "E", n.End, size, angle)
			},
		},
		'J': {interpret: porpitaTentacle(1)},
		'K': {interpret: porpitaTentacle(-1)},
	},
}

func porpitaRadius(og float64) float64 {
	return math.Exp(0.1*og + 3)
}

// porpitaAngle is the base direction of a sector, skewed by the slope of
// the press point.
func (r *run) porpitaAngle(sector float64) float64 {
	skew := 0.0
	if r.origin.X != 0 {
		skew = r.origin.Y / r.origin.X
	}
	return (sector+1)*porpitaArc + skew
}

func porpitaTentacle(sign float64) func(*run, *Node) (float64, float64, bool) {
	return func(r *run, n *Node) (float64, float64, bool) {
		return math.Exp(1.5 + 0.05*n.Size), r.porpitaAngle(n.Aux) + sign*porpitaArc, true
	}
}

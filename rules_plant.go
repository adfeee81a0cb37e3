package lsystem

import (
	"math"

	"github.com/gogpu/gg"
)

const plantTurn = 0.43633

// plantTemplate is the expansion of 'X'. Drawing and non-drawing symbols are
// kept apart in this order so consecutive 'F' segments do not streak.
var plantTemplate = [...]string{"F", "+[[X]-X]-", "F", "[-", "F", "X]+X"}

// plantFrame is a saved turtle state.
type plantFrame struct {
	pos   gg.Point
	angle float64
}

// plantState is the turtle shared by every node of a fractal plant run.
// The stack depth equals the current bracket nesting.
type plantState struct {
	plantFrame
	turn  float64
	stack []plantFrame
}

func (s *plantState) push() {
	s.stack = append(s.stack, s.plantFrame)
}

func (s *plantState) pop() bool {
	if len(s.stack) == 0 {
		return false
	}
	s.plantFrame = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Fractal plant: only 'F' draws, from the turtle's position at the
// turtle's angle. Control symbols act on the turtle and reproduce
// themselves.
var plantGrammar = &grammar{
	axiom: 'X',
	shrink: func(og float64) float64 {
		return og/(-0.15*og+5) + 0.1
	},
	seed: func(r *run, root *Node) {
		r.plant = plantState{
			turn:       plantTurn * math.Max(math.Min(2*r.rng.Float64(), 1), 0.3),
			plantFrame: plantFrame{pos: root.Start, angle: r.randomAngle()},
		}
	},
	rules: map[byte]rule{
		'X': {
			produce: func(r *run, n *Node, size, _ float64) {
				for _, part := range plantTemplate {
					r.attach(n, part, r.plant.pos, size, r.plant.angle)
				}
			},
		},
		'F': {
			interpret: func(r *run, n *Node) (float64, float64, bool) {
				n.Start = r.plant.pos
				return growthLength(n.Size), r.plant.angle, true
			},
			produce: func(r *run, n *Node, size, _ float64) {
				r.plant.pos = n.End
				r.attach(n, "FF", n.End, size, r.plant.angle)
			},
		},
		'+': {produce: plantControl(func(s *plantState) bool { s.angle += s.turn; return true })},
		'-': {produce: plantControl(func(s *plantState) bool { s.angle -= s.turn; return true })},
		'[': {produce: plantControl(func(s *plantState) bool { s.push(); return true })},
		']': {produce: plantControl((*plantState).pop)},
	},
}

// plantControl applies op to the turtle and re-attaches the symbol. A failed
// op aborts the run.
func plantControl(op func(*plantState) bool) func(*run, *Node, float64, float64) {
	return func(r *run, n *Node, size, _ float64) {
		if !op(&r.plant) {
			r.abort(ErrUnbalancedBracket)
			return
		}
		r.attach(n, string(n.Symbol), r.plant.pos, size, r.plant.angle)
	}
}

package lsystem

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
)

// Stroke size bounds. The size is both the initial branch size and the
// initial stroke width of a figure.
const (
	MinStrokeSize     = 1
	MaxStrokeSize     = 10
	DefaultStrokeSize = 5

	// DefaultMaxNodes bounds the nodes one generation run may create.
	DefaultMaxNodes = 1 << 17
)

// rule is the interpretation of one symbol within a family.
type rule struct {
	// interpret returns the segment the node is drawn as. draws is false for
	// structural symbols. It may relocate n.Start before the draw.
	interpret func(r *run, n *Node) (length, angle float64, draws bool)

	// produce attaches the node's successors. angle is the angle the node
	// was drawn at, or n.Aux if it was not drawn. A nil produce makes the
	// symbol terminal.
	produce func(r *run, n *Node, size, angle float64)
}

// grammar is the hard-wired rule table of one family.
type grammar struct {
	axiom byte

	// shrink returns how much the branch size drops per generation for a
	// figure started at size og. It is positive for og in (0, MaxStrokeSize].
	shrink func(og float64) float64

	// seed prepares the root and any run-wide state.
	seed func(r *run, root *Node)

	rules map[byte]rule
}

var grammars = [numFamilies]*grammar{
	Original:     originalGrammar,
	Barnsley:     barnsleyGrammar,
	FractalPlant: plantGrammar,
	Lichtenberg:  lichtenbergGrammar,
	CrackedEarth: crackGrammar,
	Porpita:      porpitaGrammar,
}

// Params describes one generation run.
type Params struct {
	Family Family
	Origin gg.Point
	Color  gg.RGBA

	// Size is the initial branch size and stroke width, in (0, MaxStrokeSize].
	Size float64

	// Rand drives every stochastic choice. Nil means a randomly seeded source.
	Rand *rand.Rand

	// MaxNodes bounds the nodes created by the run; 0 means DefaultMaxNodes.
	MaxNodes int
}

// Figure is the result of a generation run.
type Figure struct {
	Root    *Node
	Family  Family
	Color   gg.RGBA
	Nodes   int
	Strokes int

	// Aborted is set when the run stopped before its queue emptied; Err
	// tells why. Whatever was drawn up to that point stays drawn.
	Aborted bool
	Err     error
}

// run is the state of one generation run.
type run struct {
	grammar  *grammar
	rng      *rand.Rand
	painter  Painter
	color    gg.RGBA
	og       float64
	origin   gg.Point
	queue    queue
	maxNodes int
	nodes    int
	strokes  int
	err      error

	plant plantState
}

// Generate expands the family's axiom at p.Origin until every branch has
// degenerated, sending each drawn segment to painter as it is resolved.
//
// Generate only fails on invalid parameters. A run cut short by the node
// budget, by ctx, or by a malformed expansion is reported through
// Figure.Aborted and Figure.Err.
func Generate(ctx context.Context, p Params, painter Painter) (*Figure, error) {
	if !p.Family.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, uint8(p.Family))
	}
	if !(p.Size > 0 && p.Size <= MaxStrokeSize) {
		return nil, fmt.Errorf("%w: %v", ErrStrokeSize, p.Size)
	}
	if painter == nil {
		painter = PainterFunc(func(Stroke) {})
	}
	rng := p.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	maxNodes := p.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	g := grammars[p.Family]
	r := &run{
		grammar:  g,
		rng:      rng,
		painter:  painter,
		color:    p.Color,
		og:       p.Size,
		origin:   p.Origin,
		maxNodes: maxNodes,
	}

	root := newNode(g.axiom, p.Origin, p.Size)
	if g.seed != nil {
		g.seed(r, root)
	}
	r.nodes = 1
	r.queue.push(root)
	r.expand(ctx)

	return &Figure{
		Root:    root,
		Family:  p.Family,
		Color:   p.Color,
		Nodes:   r.nodes,
		Strokes: r.strokes,
		Aborted: r.err != nil,
		Err:     r.err,
	}, nil
}

// expand drains the work queue.
func (r *run) expand(ctx context.Context) {
	for processed := 0; r.queue.len() > 0; processed++ {
		if r.nodes > r.maxNodes {
			r.abort(ErrNodeBudget)
		} else if processed%256 == 0 {
			if err := ctx.Err(); err != nil {
				r.abort(err)
			}
		}
		if r.err != nil {
			return
		}

		n := r.queue.pop()
		if n.Size <= 0 {
			continue
		}
		r.step(n)
	}
}

// step draws n and attaches its successors.
func (r *run) step(n *Node) {
	ru, ok := r.grammar.rules[n.Symbol]
	if !ok {
		panic(fmt.Sprintf("lsystem: symbol %q has no rule", n.Symbol))
	}

	angle := n.Aux
	if ru.interpret != nil {
		if length, a, draws := ru.interpret(r, n); draws {
			r.draw(n, length, a)
			angle = a
		}
	}
	if ru.produce != nil {
		ru.produce(r, n, n.Size-r.grammar.shrink(r.og), angle)
	}
}

func (r *run) attach(n *Node, symbols string, start gg.Point, size, aux float64) {
	n.attach(&r.queue, symbols, start, size, aux)
	r.nodes += len(symbols)
}

// abort stops the run; the first reason wins.
func (r *run) abort(err error) {
	if r.err == nil {
		r.err = err
	}
}

// randomAngle returns an angle uniformly distributed over [0, 2π).
func (r *run) randomAngle() float64 {
	return 2 * math.Pi * r.rng.Float64()
}

// seedAngle gives the root a random initial drawing angle.
func seedAngle(r *run, root *Node) {
	root.Aux = r.randomAngle()
}

package transpile

import (
	"fmt"
	"math/rand"

	"github.com/plutoniumm/quantum-gates/internal/circuit"
)

// router rewrites a circuit so every two-qubit gate acts on coupled wires,
// inserting swaps as it goes. It tracks the logical-to-wire permutation the
// swaps accumulate.
type router struct {
	cm  *circuit.CouplingMap
	rng *rand.Rand

	pos  []int // logical qubit -> wire
	wire []int // wire -> logical qubit
}

func newRouter(cm *circuit.CouplingMap, seed int64) *router {
	n := cm.Size()
	r := &router{
		cm:   cm,
		rng:  rand.New(rand.NewSource(seed)),
		pos:  make([]int, n),
		wire: make([]int, n),
	}
	for i := 0; i < n; i++ {
		r.pos[i] = i
		r.wire[i] = i
	}
	return r
}

// route returns an equivalent circuit whose two-qubit gates all satisfy the
// coupling map. Gate operands in the output are wire indices.
func (r *router) route(c *circuit.Circuit) (*circuit.Circuit, error) {
	out := circuit.New(c.Name, c.NQubits)
	for _, g := range c.Gates {
		switch g.Arity() {
		case 1:
			out.Gates = append(out.Gates, remap(g, r.pos))
		case 2:
			a, b := g.Qubits[0], g.Qubits[1]
			for !r.adjacent(a, b) {
				if err := r.stepCloser(out, a, b); err != nil {
					return nil, err
				}
			}
			out.Gates = append(out.Gates, remap(g, r.pos))
		default:
			return nil, fmt.Errorf("transpile: cannot route %d-qubit gate %s", g.Arity(), g.Name)
		}
	}
	return out, nil
}

// finalLayout returns the wire each logical qubit ends up on.
func (r *router) finalLayout() []int {
	return append([]int(nil), r.pos...)
}

func (r *router) adjacent(a, b int) bool {
	wa, wb := r.pos[a], r.pos[b]
	return r.cm.Allows(wa, wb) || r.cm.Allows(wb, wa)
}

// stepCloser swaps one of the two logical qubits toward the other, picking
// the move that shrinks their wire distance most. Equal-cost moves are
// broken by the seeded rng, which is what makes routing reproducible for a
// fixed seed.
func (r *router) stepCloser(out *circuit.Circuit, a, b int) error {
	wa, wb := r.pos[a], r.pos[b]

	type move struct {
		from, to int
	}
	best := []move{}
	bestDist := -1
	consider := func(from, to, other int) {
		if !r.cm.Allows(from, to) && !r.cm.Allows(to, from) {
			return
		}
		d := r.cm.Distance(to, other)
		if d < 0 {
			return
		}
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = best[:0]
		}
		if d == bestDist {
			best = append(best, move{from, to})
		}
	}
	for _, nb := range r.cm.Neighbors(wa) {
		consider(wa, nb, wb)
	}
	for _, nb := range r.cm.Neighbors(wb) {
		consider(wb, nb, wa)
	}
	if len(best) == 0 {
		return fmt.Errorf("transpile: no route between wires %d and %d", wa, wb)
	}
	if bestDist >= r.cm.Distance(wa, wb) {
		// Every candidate move is neutral or worse; the map must be
		// disconnected in a way Distance did not catch.
		return fmt.Errorf("transpile: routing stalled between wires %d and %d", wa, wb)
	}

	m := best[r.rng.Intn(len(best))]
	r.swapWires(out, m.from, m.to)
	return nil
}

func (r *router) swapWires(out *circuit.Circuit, wa, wb int) {
	out.Gates = append(out.Gates, circuit.Gate{Name: "swap", Qubits: []int{wa, wb}})
	la, lb := r.wire[wa], r.wire[wb]
	r.wire[wa], r.wire[wb] = lb, la
	r.pos[la], r.pos[lb] = wb, wa
}

func remap(g circuit.Gate, pos []int) circuit.Gate {
	qs := make([]int, len(g.Qubits))
	for i, q := range g.Qubits {
		qs[i] = pos[q]
	}
	g.Qubits = qs
	return g
}

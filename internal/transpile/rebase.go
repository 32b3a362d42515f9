package transpile

import (
	"fmt"
	"math"

	"github.com/plutoniumm/quantum-gates/internal/circuit"
)

// rebase rewrites gates outside the target basis into native sequences.
// Decompositions bottom out in {rz, sx, x, cx}, the common superconducting
// basis; a gate neither in the basis nor decomposable is an error.
func rebase(c *circuit.Circuit, basis []string) (*circuit.Circuit, error) {
	native := make(map[string]bool, len(basis))
	for _, g := range basis {
		native[g] = true
	}

	out := circuit.New(c.Name, c.NQubits)
	for _, g := range c.Gates {
		expanded, err := expand(g, native)
		if err != nil {
			return nil, err
		}
		out.Gates = append(out.Gates, expanded...)
	}
	return out, nil
}

func expand(g circuit.Gate, native map[string]bool) ([]circuit.Gate, error) {
	if native[g.Name] || g.Name == "measure" || g.Name == "barrier" {
		return []circuit.Gate{g}, nil
	}

	q := g.Qubits
	switch g.Name {
	case "h":
		// h = rz(pi/2) sx rz(pi/2) up to global phase.
		return flatten(native,
			rz(q[0], math.Pi/2), gate1("sx", q[0]), rz(q[0], math.Pi/2))
	case "x":
		return flatten(native, gate1("sx", q[0]), gate1("sx", q[0]))
	case "z":
		return flatten(native, rz(q[0], math.Pi))
	case "s":
		return flatten(native, rz(q[0], math.Pi/2))
	case "t":
		return flatten(native, rz(q[0], math.Pi/4))
	case "swap":
		return flatten(native,
			gate2("cx", q[0], q[1]), gate2("cx", q[1], q[0]), gate2("cx", q[0], q[1]))
	case "cz":
		// cz = (I x h) cx (I x h)
		return flatten(native,
			gate1("h", q[1]), gate2("cx", q[0], q[1]), gate1("h", q[1]))
	default:
		return nil, fmt.Errorf("transpile: gate %q not in basis and no decomposition known", g.Name)
	}
}

// flatten recursively expands a candidate decomposition until every gate is
// native.
func flatten(native map[string]bool, gates ...circuit.Gate) ([]circuit.Gate, error) {
	var out []circuit.Gate
	for _, g := range gates {
		sub, err := expand(g, native)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// fixDirections reverses two-qubit gates the coupling map only admits the
// other way round, conjugating with hadamards. Runs before rebase so the
// introduced h gates are themselves decomposed.
func fixDirections(c *circuit.Circuit, cm *circuit.CouplingMap) (*circuit.Circuit, error) {
	if cm == nil {
		return c, nil
	}
	out := circuit.New(c.Name, c.NQubits)
	for _, g := range c.Gates {
		if g.Arity() != 2 {
			out.Gates = append(out.Gates, g)
			continue
		}
		a, b := g.Qubits[0], g.Qubits[1]
		switch {
		case cm.Allows(a, b):
			out.Gates = append(out.Gates, g)
		case cm.Allows(b, a):
			if g.Name == "swap" {
				// swap is symmetric; just flip the operands.
				out.Gates = append(out.Gates, gate2("swap", b, a))
				continue
			}
			out.Gates = append(out.Gates,
				gate1("h", a), gate1("h", b),
				gate2(g.Name, b, a),
				gate1("h", a), gate1("h", b))
		default:
			return nil, fmt.Errorf("transpile: gate %s on uncoupled wires (%d,%d)", g.Name, a, b)
		}
	}
	return out, nil
}

func gate1(name string, q int) circuit.Gate {
	return circuit.Gate{Name: name, Qubits: []int{q}}
}

func gate2(name string, a, b int) circuit.Gate {
	return circuit.Gate{Name: name, Qubits: []int{a, b}}
}

func rz(q int, theta float64) circuit.Gate {
	return circuit.Gate{Name: "rz", Qubits: []int{q}, Params: []float64{theta}}
}

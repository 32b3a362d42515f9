// Package circuit defines the gate-level intermediate representation the
// transpiler operates on, together with device coupling maps.
package circuit

import (
	"fmt"
	"strings"
	"time"
)

// Gate is a single instruction. Qubits are logical indices until the
// transpiler applies a layout, physical indices afterwards.
type Gate struct {
	Name     string
	Qubits   []int
	Params   []float64
	Duration time.Duration

	// Start is filled in by ASAP scheduling; zero until then.
	Start time.Duration
}

// Arity returns the number of operands.
func (g Gate) Arity() int { return len(g.Qubits) }

// Circuit is an ordered gate list over a fixed register.
type Circuit struct {
	Name    string
	NQubits int
	Gates   []Gate
}

// Generator produces a circuit for a given register size. Experiment
// drivers supply one per circuit family (GHZ, QFT, random, ...).
type Generator func(nqubits int) (*Circuit, error)

// New returns an empty circuit over nqubits qubits.
func New(name string, nqubits int) *Circuit {
	return &Circuit{Name: name, NQubits: nqubits}
}

// Append adds a gate after validating its operands.
func (c *Circuit) Append(name string, qubits ...int) error {
	for _, q := range qubits {
		if q < 0 || q >= c.NQubits {
			return fmt.Errorf("circuit: qubit %d out of range [0,%d)", q, c.NQubits)
		}
	}
	if len(qubits) == 2 && qubits[0] == qubits[1] {
		return fmt.Errorf("circuit: duplicate operand %d on %s", qubits[0], name)
	}
	c.Gates = append(c.Gates, Gate{Name: name, Qubits: append([]int(nil), qubits...)})
	return nil
}

// MustAppend is Append for static circuit construction in generators.
func (c *Circuit) MustAppend(name string, qubits ...int) {
	if err := c.Append(name, qubits...); err != nil {
		panic(err)
	}
}

// Depth returns the length of the longest dependency chain, counting gates.
func (c *Circuit) Depth() int {
	front := make([]int, c.NQubits)
	depth := 0
	for _, g := range c.Gates {
		level := 0
		for _, q := range g.Qubits {
			if front[q] > level {
				level = front[q]
			}
		}
		level++
		for _, q := range g.Qubits {
			front[q] = level
		}
		if level > depth {
			depth = level
		}
	}
	return depth
}

// CountOps returns gate counts keyed by gate name.
func (c *Circuit) CountOps() map[string]int {
	ops := make(map[string]int)
	for _, g := range c.Gates {
		ops[g.Name]++
	}
	return ops
}

// String renders a compact one-line summary for logs.
func (c *Circuit) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[q=%d g=%d d=%d]", c.Name, c.NQubits, len(c.Gates), c.Depth())
	return b.String()
}

// Clone returns a deep copy. The transpiler never mutates its input.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{Name: c.Name, NQubits: c.NQubits, Gates: make([]Gate, len(c.Gates))}
	for i, g := range c.Gates {
		g.Qubits = append([]int(nil), g.Qubits...)
		g.Params = append([]float64(nil), g.Params...)
		out.Gates[i] = g
	}
	return out
}

// Package transpile compiles logical circuits for a target device. It
// mirrors the two-stage flow the experiments were designed around: circuits
// are first routed against a bidirectional line map (the devices of interest
// are linear chains), then laid out on the device's physical qubits, rebased
// to its native gate set, and ASAP-scheduled using calibrated gate times.
package transpile

import (
	"fmt"
	"time"

	"github.com/plutoniumm/quantum-gates/internal/circuit"
)

// DefaultSeed makes routing reproducible across runs unless overridden.
const DefaultSeed int64 = 42

// Backend is the slice of a device the transpiler needs.
type Backend interface {
	Name() string
	NQubits() int
	BasisGates() []string
	CouplingMap() *circuit.CouplingMap
	GateDuration(name string) time.Duration
}

// Options control a transpilation run.
type Options struct {
	// Seed feeds the router's tie-breaking rng. Zero means DefaultSeed.
	Seed int64
	// SkipScheduling leaves gate start times unset.
	SkipScheduling bool
}

func (o Options) seed() int64 {
	if o.Seed == 0 {
		return DefaultSeed
	}
	return o.Seed
}

// Result pairs a compiled circuit with its schedule length.
type Result struct {
	Circuit  *circuit.Circuit
	Makespan time.Duration
}

// Compile runs the full pipeline for one circuit: line routing, layout onto
// the physical qubits in layout[:n], direction fixing, rebase, scheduling.
func Compile(c *circuit.Circuit, b Backend, layout []int, opts Options) (*Result, error) {
	n := c.NQubits
	if len(layout) < n {
		return nil, fmt.Errorf("transpile: layout has %d qubits, circuit needs %d", len(layout), n)
	}
	if err := checkLayout(layout[:n], b.NQubits()); err != nil {
		return nil, err
	}

	// Stage 1: route against a bidirectional line. The layout prefix is
	// assumed to be a chain on the device, so line-routed circuits map onto
	// it edge for edge.
	r := newRouter(circuit.LineMap(n, true), opts.seed())
	routed, err := r.route(c.Clone())
	if err != nil {
		return nil, err
	}

	// Stage 2: physical layout, then native gates.
	placed, err := applyLayout(routed, layout[:n], b.NQubits())
	if err != nil {
		return nil, err
	}
	placed, err = rebase(placed, b.BasisGates())
	if err != nil {
		return nil, err
	}
	placed, err = fixDirections(placed, b.CouplingMap())
	if err != nil {
		return nil, err
	}
	// Direction fixing can reintroduce h on an {rz,sx,x,cx} device.
	placed, err = rebase(placed, b.BasisGates())
	if err != nil {
		return nil, err
	}

	res := &Result{Circuit: placed}
	if !opts.SkipScheduling {
		res.Makespan = scheduleASAP(placed, b)
	}
	return res, nil
}

// List generates and compiles one circuit per entry of nqubitsList, in
// order. The returned slice corresponds 1:1 to nqubitsList.
func List(gen circuit.Generator, nqubitsList []int, layout []int, b Backend, opts Options) ([]*circuit.Circuit, error) {
	if gen == nil {
		return nil, fmt.Errorf("transpile: nil circuit generator")
	}
	out := make([]*circuit.Circuit, 0, len(nqubitsList))
	for _, n := range nqubitsList {
		if n < 1 {
			return nil, fmt.Errorf("transpile: invalid qubit count %d", n)
		}
		c, err := gen(n)
		if err != nil {
			return nil, fmt.Errorf("transpile: generate %d-qubit circuit: %w", n, err)
		}
		if c.NQubits != n {
			return nil, fmt.Errorf("transpile: generator returned %d qubits, want %d", c.NQubits, n)
		}
		res, err := Compile(c, b, layout, opts)
		if err != nil {
			return nil, fmt.Errorf("transpile: compile %d-qubit circuit: %w", n, err)
		}
		out = append(out, res.Circuit)
	}
	return out, nil
}

// applyLayout renames wire i to physical qubit layout[i] and widens the
// register to the device size.
func applyLayout(c *circuit.Circuit, layout []int, deviceQubits int) (*circuit.Circuit, error) {
	out := circuit.New(c.Name, deviceQubits)
	for _, g := range c.Gates {
		qs := make([]int, len(g.Qubits))
		for i, q := range g.Qubits {
			qs[i] = layout[q]
		}
		g.Qubits = qs
		out.Gates = append(out.Gates, g)
	}
	return out, nil
}

func checkLayout(layout []int, deviceQubits int) error {
	seen := make(map[int]bool, len(layout))
	for _, p := range layout {
		if p < 0 || p >= deviceQubits {
			return fmt.Errorf("transpile: layout qubit %d outside device of %d qubits", p, deviceQubits)
		}
		if seen[p] {
			return fmt.Errorf("transpile: duplicate physical qubit %d in layout", p)
		}
		seen[p] = true
	}
	return nil
}

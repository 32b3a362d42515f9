package circuit

import (
	"fmt"
	"math"
	"sort"
)

// GHZ returns the generator for h(0) followed by a cx fan-out, preparing
// (|0...0> + |1...1>)/sqrt2.
func GHZ() Generator {
	return func(n int) (*Circuit, error) {
		if n < 1 {
			return nil, fmt.Errorf("circuit: ghz needs at least 1 qubit, got %d", n)
		}
		c := New("ghz", n)
		c.MustAppend("h", 0)
		for i := 1; i < n; i++ {
			c.MustAppend("cx", 0, i)
		}
		for i := 0; i < n; i++ {
			c.MustAppend("measure", i)
		}
		return c, nil
	}
}

// Chain returns the generator for a nearest-neighbour entangling chain:
// a hadamard layer, cx down the line, then measurement.
func Chain() Generator {
	return func(n int) (*Circuit, error) {
		if n < 1 {
			return nil, fmt.Errorf("circuit: chain needs at least 1 qubit, got %d", n)
		}
		c := New("chain", n)
		for i := 0; i < n; i++ {
			c.MustAppend("h", i)
		}
		for i := 0; i < n-1; i++ {
			c.MustAppend("cx", i, i+1)
		}
		for i := 0; i < n; i++ {
			c.MustAppend("measure", i)
		}
		return c, nil
	}
}

// QFT returns the generator for the quantum Fourier transform with the
// controlled phases expanded into rz/cx, followed by the terminal swap
// network and measurement.
func QFT() Generator {
	return func(n int) (*Circuit, error) {
		if n < 1 {
			return nil, fmt.Errorf("circuit: qft needs at least 1 qubit, got %d", n)
		}
		c := New("qft", n)
		for i := 0; i < n; i++ {
			c.MustAppend("h", i)
			for j := i + 1; j < n; j++ {
				theta := math.Pi / float64(int(1)<<uint(j-i))
				// Controlled phase via rz conjugation: cp(theta) =
				// rz(theta/2) on both, cx, rz(-theta/2), cx.
				c.Gates = append(c.Gates,
					Gate{Name: "rz", Qubits: []int{i}, Params: []float64{theta / 2}},
					Gate{Name: "rz", Qubits: []int{j}, Params: []float64{theta / 2}},
					Gate{Name: "cx", Qubits: []int{i, j}},
					Gate{Name: "rz", Qubits: []int{j}, Params: []float64{-theta / 2}},
					Gate{Name: "cx", Qubits: []int{i, j}},
				)
			}
		}
		for i := 0; i < n/2; i++ {
			c.MustAppend("swap", i, n-1-i)
		}
		for i := 0; i < n; i++ {
			c.MustAppend("measure", i)
		}
		return c, nil
	}
}

var generators = map[string]func() Generator{
	"ghz":   GHZ,
	"chain": Chain,
	"qft":   QFT,
}

// GeneratorByName resolves a named circuit family.
func GeneratorByName(name string) (Generator, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("circuit: unknown circuit family %q (have %v)", name, GeneratorNames())
	}
	return gen(), nil
}

// GeneratorNames lists the registered circuit families, sorted.
func GeneratorNames() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

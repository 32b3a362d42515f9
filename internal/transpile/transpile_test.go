package transpile

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/plutoniumm/quantum-gates/internal/backend"
	"github.com/plutoniumm/quantum-gates/internal/circuit"
)

// ghz builds h(0) followed by a cx fan-out from qubit 0.
func ghz(n int) (*circuit.Circuit, error) {
	c := circuit.New("ghz", n)
	c.MustAppend("h", 0)
	for i := 1; i < n; i++ {
		c.MustAppend("cx", 0, i)
	}
	return c, nil
}

func identityLayout(n int) []int {
	l := make([]int, n)
	for i := range l {
		l[i] = i
	}
	return l
}

func TestCompile_OnlyBasisGates(t *testing.T) {
	dev := backend.LocalSimulator(4)
	gen, _ := ghz(4)

	res, err := Compile(gen, dev, identityLayout(4), Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	basis := map[string]bool{}
	for _, g := range dev.BasisGates() {
		basis[g] = true
	}
	for _, g := range res.Circuit.Gates {
		if !basis[g.Name] {
			t.Errorf("non-native gate %q survived rebase", g.Name)
		}
	}
}

func TestCompile_RoutesToLine(t *testing.T) {
	// cx(0,3) on a line needs swaps before it becomes adjacent.
	c := circuit.New("far", 4)
	c.MustAppend("cx", 0, 3)

	dev := backend.LocalSimulator(4)
	res, err := Compile(c, dev, identityLayout(4), Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	ops := res.Circuit.CountOps()
	if ops["swap"] < 2 {
		t.Errorf("expected at least 2 swaps routing cx(0,3), got ops %v", ops)
	}
	for _, g := range res.Circuit.Gates {
		if g.Arity() != 2 {
			continue
		}
		a, b := g.Qubits[0], g.Qubits[1]
		if a-b != 1 && b-a != 1 {
			t.Errorf("gate %s(%d,%d) not on adjacent line wires", g.Name, a, b)
		}
	}
}

func TestCompile_Deterministic(t *testing.T) {
	dev := backend.LocalSimulator(5)
	layout := identityLayout(5)

	first, err := List(ghz, []int{5}, layout, dev, Options{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	second, err := List(ghz, []int{5}, layout, dev, Options{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff(first[0], second[0]); diff != "" {
		t.Errorf("same seed produced different circuits (-first +second):\n%s", diff)
	}
}

func TestCompile_AppliesLayout(t *testing.T) {
	c := circuit.New("bell", 2)
	c.MustAppend("h", 0)
	c.MustAppend("cx", 0, 1)

	dev := backend.LocalSimulator(7)
	layout := []int{3, 4, 5, 6}

	res, err := Compile(c, dev, layout, Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if res.Circuit.NQubits != 7 {
		t.Errorf("register widened to %d, want 7", res.Circuit.NQubits)
	}
	for _, g := range res.Circuit.Gates {
		for _, q := range g.Qubits {
			if q != 3 && q != 4 {
				t.Errorf("gate %s touches physical qubit %d outside layout prefix", g.Name, q)
			}
		}
	}
}

func TestCompile_LayoutErrors(t *testing.T) {
	c := circuit.New("bell", 2)
	c.MustAppend("cx", 0, 1)
	dev := backend.LocalSimulator(3)

	if _, err := Compile(c, dev, []int{0}, Options{}); err == nil {
		t.Error("expected error for short layout")
	}
	if _, err := Compile(c, dev, []int{0, 5}, Options{}); err == nil {
		t.Error("expected error for layout outside device")
	}
	if _, err := Compile(c, dev, []int{1, 1}, Options{}); err == nil {
		t.Error("expected error for duplicate layout entries")
	}
}

func TestFixDirections(t *testing.T) {
	// Unidirectional 0->1: cx(1,0) must be flipped.
	cm := circuit.LineMap(2, false)
	c := circuit.New("flip", 2)
	c.MustAppend("cx", 1, 0)

	fixed, err := fixDirections(c, cm)
	if err != nil {
		t.Fatalf("fixDirections failed: %v", err)
	}
	var cxGates []circuit.Gate
	for _, g := range fixed.Gates {
		if g.Name == "cx" {
			cxGates = append(cxGates, g)
		}
	}
	if len(cxGates) != 1 || cxGates[0].Qubits[0] != 0 || cxGates[0].Qubits[1] != 1 {
		t.Errorf("cx not flipped: %+v", cxGates)
	}
	if fixed.CountOps()["h"] != 4 {
		t.Errorf("expected 4 conjugating h gates, got %v", fixed.CountOps())
	}
}

func TestScheduleASAP(t *testing.T) {
	dev := backend.LocalSimulator(2)
	c := circuit.New("sched", 2)
	c.MustAppend("sx", 0) // 35ns
	c.MustAppend("sx", 1) // parallel, 35ns
	c.MustAppend("cx", 0, 1)

	makespan := scheduleASAP(c, dev)
	want := 35*time.Nanosecond + 300*time.Nanosecond
	if makespan != want {
		t.Errorf("makespan = %v, want %v", makespan, want)
	}
	if c.Gates[1].Start != 0 {
		t.Errorf("parallel sx should start at 0, got %v", c.Gates[1].Start)
	}
	if c.Gates[2].Start != 35*time.Nanosecond {
		t.Errorf("cx start = %v, want 35ns", c.Gates[2].Start)
	}
}

func TestList_OneToOne(t *testing.T) {
	dev := backend.LocalSimulator(6)
	sizes := []int{2, 3, 5}

	got, err := List(ghz, sizes, identityLayout(6), dev, Options{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != len(sizes) {
		t.Fatalf("List returned %d circuits for %d sizes", len(got), len(sizes))
	}
	for i, c := range got {
		if c.NQubits != dev.NQubits() {
			t.Errorf("circuit %d register = %d, want %d", i, c.NQubits, dev.NQubits())
		}
	}
}

func TestList_GeneratorMismatch(t *testing.T) {
	bad := func(n int) (*circuit.Circuit, error) {
		return circuit.New("bad", n+1), nil
	}
	dev := backend.LocalSimulator(4)
	if _, err := List(bad, []int{2}, identityLayout(4), dev, Options{}); err == nil {
		t.Error("expected error for generator size mismatch")
	}
}

func TestRebase_UnknownGate(t *testing.T) {
	c := circuit.New("odd", 1)
	c.Gates = append(c.Gates, circuit.Gate{Name: "mystery", Qubits: []int{0}})
	if _, err := rebase(c, []string{"rz", "sx", "cx"}); err == nil {
		t.Error("expected error for unknown gate")
	}
}

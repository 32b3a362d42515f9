package circuit

import "testing"

func TestGHZ(t *testing.T) {
	gen := GHZ()
	c, err := gen(4)
	if err != nil {
		t.Fatalf("GHZ failed: %v", err)
	}
	ops := c.CountOps()
	if ops["h"] != 1 || ops["cx"] != 3 || ops["measure"] != 4 {
		t.Errorf("GHZ(4) ops = %v", ops)
	}

	if _, err := gen(0); err == nil {
		t.Error("expected error for 0 qubits")
	}
}

func TestChain(t *testing.T) {
	c, err := Chain()(3)
	if err != nil {
		t.Fatalf("Chain failed: %v", err)
	}
	ops := c.CountOps()
	if ops["h"] != 3 || ops["cx"] != 2 {
		t.Errorf("Chain(3) ops = %v", ops)
	}
	// All cx on nearest neighbours by construction.
	for _, g := range c.Gates {
		if g.Name == "cx" && g.Qubits[1]-g.Qubits[0] != 1 {
			t.Errorf("chain cx on non-adjacent pair %v", g.Qubits)
		}
	}
}

func TestQFT(t *testing.T) {
	c, err := QFT()(3)
	if err != nil {
		t.Fatalf("QFT failed: %v", err)
	}
	ops := c.CountOps()
	// 3 h, 3 controlled phases at 2 cx each, 1 terminal swap.
	if ops["h"] != 3 || ops["cx"] != 6 || ops["swap"] != 1 {
		t.Errorf("QFT(3) ops = %v", ops)
	}
}

func TestGeneratorByName(t *testing.T) {
	for _, name := range GeneratorNames() {
		gen, err := GeneratorByName(name)
		if err != nil {
			t.Fatalf("GeneratorByName(%s) failed: %v", name, err)
		}
		c, err := gen(2)
		if err != nil {
			t.Fatalf("%s(2) failed: %v", name, err)
		}
		if c.NQubits != 2 {
			t.Errorf("%s(2) has %d qubits", name, c.NQubits)
		}
	}

	if _, err := GeneratorByName("nope"); err == nil {
		t.Error("expected error for unknown family")
	}
}

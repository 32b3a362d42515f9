package distance

import (
	"errors"
	"math"
	"testing"

	"github.com/plutoniumm/quantum-gates/internal/counts"
)

const tol = 1e-12

func TestHellinger_Identical(t *testing.T) {
	p := []float64{0.5, 0.25, 0.25}
	d, err := Hellinger(p, p)
	if err != nil {
		t.Fatalf("Hellinger failed: %v", err)
	}
	if d != 0 {
		t.Errorf("distance between identical distributions = %v, want 0", d)
	}
}

func TestHellinger_Disjoint(t *testing.T) {
	p := []float64{1, 0}
	q := []float64{0, 1}
	d, err := Hellinger(p, q)
	if err != nil {
		t.Fatalf("Hellinger failed: %v", err)
	}
	if math.Abs(d-1) > tol {
		t.Errorf("distance between disjoint distributions = %v, want 1", d)
	}
}

func TestHellinger_KnownValue(t *testing.T) {
	// H((1,0),(0.5,0.5)) = (1/sqrt2)*sqrt((1-1/sqrt2)^2 + 1/2)
	p := []float64{1, 0}
	q := []float64{0.5, 0.5}
	want := math.Sqrt(math.Pow(1-1/math.Sqrt2, 2)+0.5) / math.Sqrt2

	d, err := Hellinger(p, q)
	if err != nil {
		t.Fatalf("Hellinger failed: %v", err)
	}
	if math.Abs(d-want) > tol {
		t.Errorf("Hellinger = %v, want %v", d, want)
	}
}

func TestHellinger_Symmetric(t *testing.T) {
	p := []float64{0.7, 0.2, 0.1, 0}
	q := []float64{0.4, 0.3, 0.2, 0.1}
	d1, err := Hellinger(p, q)
	if err != nil {
		t.Fatalf("Hellinger failed: %v", err)
	}
	d2, _ := Hellinger(q, p)
	if math.Abs(d1-d2) > tol {
		t.Errorf("not symmetric: %v vs %v", d1, d2)
	}
}

func TestHellinger_LengthMismatch(t *testing.T) {
	_, err := Hellinger([]float64{1}, []float64{0.5, 0.5})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestTotalVariation(t *testing.T) {
	p := []float64{1, 0}
	q := []float64{0.5, 0.5}
	d, err := TotalVariation(p, q)
	if err != nil {
		t.Fatalf("TotalVariation failed: %v", err)
	}
	if math.Abs(d-0.5) > tol {
		t.Errorf("TotalVariation = %v, want 0.5", d)
	}
}

func TestHellingerCounts(t *testing.T) {
	a := []counts.Bin{{State: "0", Count: 50}, {State: "1", Count: 50}}
	b := []counts.Bin{{State: "0", Count: 50}, {State: "1", Count: 50}}
	d, err := HellingerCounts(a, b)
	if err != nil {
		t.Fatalf("HellingerCounts failed: %v", err)
	}
	if d != 0 {
		t.Errorf("HellingerCounts = %v, want 0", d)
	}

	if _, err := HellingerCounts(a, []counts.Bin{{State: "0", Count: 0}, {State: "1", Count: 0}}); err == nil {
		t.Error("expected error for zero-shot histogram")
	}
}

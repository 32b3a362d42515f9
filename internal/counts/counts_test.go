package counts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize_MirrorsAndDensifies(t *testing.T) {
	raw := map[string]int{
		"00": 480,
		"10": 31, // little-endian: q0=1 -> standard "01"
		"11": 489,
	}

	got, err := Normalize(raw, 2)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := []Bin{
		{State: "00", Count: 480},
		{State: "01", Count: 31},
		{State: "10", Count: 0},
		{State: "11", Count: 489},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("histogram mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_MissingEndpoints(t *testing.T) {
	// Neither all-zeros nor all-ones observed; both must be inserted.
	raw := map[string]int{"01": 3, "10": 5}

	got, err := Normalize(raw, 2)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(got))
	}
	if got[0].State != "00" || got[0].Count != 0 {
		t.Errorf("first bin = %+v, want 00/0", got[0])
	}
	if got[3].State != "11" || got[3].Count != 0 {
		t.Errorf("last bin = %+v, want 11/0", got[3])
	}
}

func TestNormalize_PreservesShotTotal(t *testing.T) {
	raw := map[string]int{"000": 10, "001": 20, "110": 30, "111": 40}
	bins, err := Normalize(raw, 3)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(bins) != 8 {
		t.Fatalf("expected 8 bins, got %d", len(bins))
	}
	if Total(bins) != 100 {
		t.Errorf("Total = %d, want 100", Total(bins))
	}
	if !Sorted(bins) {
		t.Error("Normalize output is not sorted")
	}
}

func TestNormalize_Errors(t *testing.T) {
	cases := []struct {
		name    string
		raw     map[string]int
		nqubits int
	}{
		{"empty", map[string]int{}, 2},
		{"zero qubits", map[string]int{"0": 1}, 0},
		{"non-binary state", map[string]int{"0x": 1}, 2},
		{"state too long", map[string]int{"0101": 1}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Normalize(tc.raw, tc.nqubits); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestProbabilities(t *testing.T) {
	bins := []Bin{{"00", 1}, {"01", 1}, {"10", 0}, {"11", 2}}
	p, err := Probabilities(bins)
	if err != nil {
		t.Fatalf("Probabilities failed: %v", err)
	}
	want := []float64{0.25, 0.25, 0, 0.5}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("probabilities mismatch (-want +got):\n%s", diff)
	}

	if _, err := Probabilities([]Bin{{"0", 0}, {"1", 0}}); err == nil {
		t.Error("expected error for zero total shots")
	}
}

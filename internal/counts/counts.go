// Package counts post-processes measurement histograms returned by a
// simulator or device. Raw histograms arrive keyed by bitstring in
// little-endian bit order and usually omit states that were never observed;
// Normalize converts them to standard convention and densifies them so every
// basis state in [0, 2^n) is present.
package counts

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Bin is a single histogram entry: a basis state in standard convention and
// the number of shots that observed it.
type Bin struct {
	State string
	Count int
}

// ErrEmpty is returned when a raw histogram contains no entries.
var ErrEmpty = errors.New("counts: empty histogram")

// Normalize fixes a raw histogram into standard convention. Every bitstring
// is mirrored (the raw keys are little-endian), the entries are sorted
// ascending by basis-state value, and missing states are inserted with a
// zero count. The result always has length 2^nqubits.
func Normalize(raw map[string]int, nqubits int) ([]Bin, error) {
	if len(raw) == 0 {
		return nil, ErrEmpty
	}
	if nqubits < 1 {
		return nil, fmt.Errorf("counts: invalid qubit count %d", nqubits)
	}

	mirrored := make(map[uint64]int, len(raw))
	for state, n := range raw {
		if len(state) > nqubits {
			return nil, fmt.Errorf("counts: state %q longer than %d bits", state, nqubits)
		}
		v, err := strconv.ParseUint(mirror(state), 2, 64)
		if err != nil {
			return nil, fmt.Errorf("counts: bad state %q: %w", state, err)
		}
		// Distinct raw keys can collide after zero-padding (e.g. "01" and
		// "010" on three qubits both mirror onto the same value).
		mirrored[v] += n
	}

	dim := uint64(1) << uint(nqubits)
	for v := range mirrored {
		if v >= dim {
			return nil, fmt.Errorf("counts: state value %d outside %d-qubit space", v, nqubits)
		}
	}

	bins := make([]Bin, 0, dim)
	for v := uint64(0); v < dim; v++ {
		bins = append(bins, Bin{State: formatState(v, nqubits), Count: mirrored[v]})
	}
	return bins, nil
}

// Probabilities converts a dense histogram into normalized frequencies.
func Probabilities(bins []Bin) ([]float64, error) {
	total := 0
	for _, b := range bins {
		if b.Count < 0 {
			return nil, fmt.Errorf("counts: negative count for state %s", b.State)
		}
		total += b.Count
	}
	if total == 0 {
		return nil, errors.New("counts: zero total shots")
	}
	p := make([]float64, len(bins))
	for i, b := range bins {
		p[i] = float64(b.Count) / float64(total)
	}
	return p, nil
}

// Total returns the number of shots recorded across all bins.
func Total(bins []Bin) int {
	n := 0
	for _, b := range bins {
		n += b.Count
	}
	return n
}

// Sorted reports whether the histogram is in ascending basis-state order.
// Normalize always returns sorted output; this exists for callers that
// build histograms by hand.
func Sorted(bins []Bin) bool {
	return sort.SliceIsSorted(bins, func(i, j int) bool {
		return bins[i].State < bins[j].State
	})
}

func mirror(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func formatState(v uint64, nqubits int) string {
	s := strconv.FormatUint(v, 2)
	for len(s) < nqubits {
		s = "0" + s
	}
	return s
}

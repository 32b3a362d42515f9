// Package distance implements statistical distances between measurement
// distributions, used to score a noisy simulation against device data.
package distance

import (
	"errors"
	"fmt"
	"math"

	"github.com/plutoniumm/quantum-gates/internal/counts"
)

// ErrLengthMismatch is returned when the two distributions disagree in size.
var ErrLengthMismatch = errors.New("distance: distributions differ in length")

// Hellinger returns the Hellinger distance between two discrete
// distributions: (1/sqrt2) * sqrt(sum_i (sqrt(p_i)-sqrt(q_i))^2).
// For probability vectors the result lies in [0, 1].
func Hellinger(p, q []float64) (float64, error) {
	if err := check(p, q); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range p {
		d := math.Sqrt(p[i]) - math.Sqrt(q[i])
		sum += d * d
	}
	return math.Sqrt(sum) / math.Sqrt2, nil
}

// TotalVariation returns (1/2) * sum_i |p_i - q_i|.
func TotalVariation(p, q []float64) (float64, error) {
	if err := check(p, q); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range p {
		sum += math.Abs(p[i] - q[i])
	}
	return sum / 2, nil
}

// HellingerCounts scores two normalized histograms against each other.
func HellingerCounts(a, b []counts.Bin) (float64, error) {
	p, err := counts.Probabilities(a)
	if err != nil {
		return 0, err
	}
	q, err := counts.Probabilities(b)
	if err != nil {
		return 0, err
	}
	return Hellinger(p, q)
}

func check(p, q []float64) error {
	if len(p) == 0 || len(q) == 0 {
		return errors.New("distance: empty distribution")
	}
	if len(p) != len(q) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(p), len(q))
	}
	for i := range p {
		if p[i] < 0 || q[i] < 0 {
			return fmt.Errorf("distance: negative mass at index %d", i)
		}
	}
	return nil
}

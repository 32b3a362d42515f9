package transpile

import (
	"time"

	"github.com/plutoniumm/quantum-gates/internal/circuit"
)

// scheduleASAP assigns each gate the earliest start at which all of its
// operands are free, and stamps durations from the backend calibration.
// Returns the total wall time of the schedule.
func scheduleASAP(c *circuit.Circuit, b Backend) time.Duration {
	free := make([]time.Duration, c.NQubits)
	var makespan time.Duration
	for i := range c.Gates {
		g := &c.Gates[i]
		g.Duration = b.GateDuration(g.Name)

		start := time.Duration(0)
		for _, q := range g.Qubits {
			if free[q] > start {
				start = free[q]
			}
		}
		g.Start = start
		end := start + g.Duration
		for _, q := range g.Qubits {
			free[q] = end
		}
		if end > makespan {
			makespan = end
		}
	}
	return makespan
}

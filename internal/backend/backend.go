// Package backend resolves the quantum devices experiments run against.
// Device metadata (register size, basis gates, connectivity, gate timings)
// comes from the provider API for real hardware, or from LocalSimulator for
// offline runs. Account credentials are kept in a JSON file under the user
// config directory.
package backend

import (
	"time"

	"github.com/plutoniumm/quantum-gates/internal/circuit"
)

// Device describes a target the transpiler can compile for.
type Device struct {
	DeviceName string
	Qubits     int
	Basis      []string
	Coupling   *circuit.CouplingMap
	Durations  map[string]time.Duration
	Simulator  bool
}

// Name returns the device identifier, e.g. "ibm_perth".
func (d *Device) Name() string { return d.DeviceName }

// NQubits returns the register size.
func (d *Device) NQubits() int { return d.Qubits }

// BasisGates returns the native gate set.
func (d *Device) BasisGates() []string { return append([]string(nil), d.Basis...) }

// CouplingMap returns the device connectivity; nil means all-to-all.
func (d *Device) CouplingMap() *circuit.CouplingMap { return d.Coupling }

// GateDuration returns the calibrated duration for a native gate, falling
// back to zero for gates the device reports no timing for (e.g. virtual rz).
func (d *Device) GateDuration(name string) time.Duration {
	return d.Durations[name]
}

// Default timings used by the local simulator, loosely modelled on
// superconducting hardware calibrations.
var simulatorDurations = map[string]time.Duration{
	"sx":      35 * time.Nanosecond,
	"x":       35 * time.Nanosecond,
	"rz":      0,
	"cx":      300 * time.Nanosecond,
	"swap":    900 * time.Nanosecond,
	"measure": 700 * time.Nanosecond,
}

// LocalSimulator returns an offline all-to-all device over n qubits. It
// stands in for hardware when no account is configured.
func LocalSimulator(n int) *Device {
	durs := make(map[string]time.Duration, len(simulatorDurations))
	for k, v := range simulatorDurations {
		durs[k] = v
	}
	return &Device{
		DeviceName: "local_simulator",
		Qubits:     n,
		Basis:      []string{"rz", "sx", "x", "cx", "swap", "measure"},
		Coupling:   nil, // unconstrained
		Durations:  durs,
		Simulator:  true,
	}
}

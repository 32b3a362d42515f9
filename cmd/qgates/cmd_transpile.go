package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plutoniumm/quantum-gates/internal/backend"
	"github.com/plutoniumm/quantum-gates/internal/circuit"
	"github.com/plutoniumm/quantum-gates/internal/transpile"
)

var (
	transpileQubits  int
	transpileCircuit string
	transpileSeed    int64
)

var transpileCmd = &cobra.Command{
	Use:   "transpile",
	Short: "Compile a single circuit and print its summary",
	Long: `Generates one circuit of the chosen family, compiles it for the
local simulator with linear connectivity, and prints the gate counts,
depth and ASAP schedule length. Useful for eyeballing what a sweep will
produce before committing machine time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := circuit.GeneratorByName(transpileCircuit)
		if err != nil {
			return err
		}
		c, err := gen(transpileQubits)
		if err != nil {
			return err
		}

		dev := backend.LocalSimulator(transpileQubits)
		layout := make([]int, transpileQubits)
		for i := range layout {
			layout[i] = i
		}

		res, err := transpile.Compile(c, dev, layout, transpile.Options{Seed: transpileSeed})
		if err != nil {
			return err
		}

		fmt.Printf("circuit:  %s on %d qubits\n", transpileCircuit, transpileQubits)
		fmt.Printf("gates:    %d (%s)\n", len(res.Circuit.Gates), formatOps(res.Circuit.CountOps()))
		fmt.Printf("depth:    %d\n", res.Circuit.Depth())
		fmt.Printf("schedule: %v\n", res.Makespan)
		return nil
	},
}

func init() {
	transpileCmd.Flags().IntVarP(&transpileQubits, "qubits", "q", 3, "register size")
	transpileCmd.Flags().StringVar(&transpileCircuit, "circuit", "ghz", "circuit family (ghz, chain, qft)")
	transpileCmd.Flags().Int64Var(&transpileSeed, "seed", transpile.DefaultSeed, "transpiler seed")
}

func formatOps(ops map[string]int) string {
	parts := make([]string, 0, len(ops))
	for _, name := range sortedKeys(ops) {
		parts = append(parts, fmt.Sprintf("%s=%d", name, ops[name]))
	}
	return strings.Join(parts, " ")
}

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plutoniumm/quantum-gates/internal/circuit"
	"github.com/plutoniumm/quantum-gates/internal/config"
	"github.com/plutoniumm/quantum-gates/internal/postprocess"
	"github.com/plutoniumm/quantum-gates/internal/runner"
	"github.com/plutoniumm/quantum-gates/internal/store"
	"github.com/plutoniumm/quantum-gates/internal/transpile"
)

var (
	runCircuit string
	runSerial  bool
	runSeed    int64
)

var runCmd = &cobra.Command{
	Use:   "run [config-file]",
	Short: "Run a transpilation sweep for an experiment config",
	Long: `Loads the experiment config, compiles one circuit per entry of
nqubits_list for the configured device, and executes the sweep over the
worker pool. Per-circuit summaries (qubits, gate count, depth, schedule
length) are written as a text matrix into the output directory, and every
simulation is recorded in the run catalog.

Without a config filename an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSweep,
}

func init() {
	runCmd.Flags().StringVar(&runCircuit, "circuit", "ghz", "circuit family to sweep (ghz, chain, qft)")
	runCmd.Flags().BoolVar(&runSerial, "serial", false, "run tasks one at a time for debugging")
	runCmd.Flags().Int64Var(&runSeed, "seed", transpile.DefaultSeed, "transpiler seed")
}

// sweepRow is one line of the output summary matrix.
type sweepRow struct {
	nqubits  int
	gates    int
	depth    int
	makespan time.Duration
}

func runSweep(cmd *cobra.Command, args []string) error {
	name, err := resolveConfigName(args)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFrom(configDir, name)
	if err != nil {
		return err
	}
	logger.Info("loaded configuration",
		zap.String("file", name),
		zap.String("experiment", cfg.Name),
		zap.String("device", cfg.Device))

	dev, err := resolveDevice(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	gen, err := circuit.GeneratorByName(runCircuit)
	if err != nil {
		return err
	}

	catalog, err := store.NewStore(cfg.OutputDir)
	if err != nil {
		return err
	}
	defer catalog.Close()

	tasks := make([]runner.Task, len(cfg.NQubitsList))
	runIDs := make([]string, len(cfg.NQubitsList))
	for i, n := range cfg.NQubitsList {
		tasks[i] = runner.Task{Index: i, NQubits: n}
		id, err := catalog.Begin(cfg.Name, dev.Name(), n, cfg.Shots)
		if err != nil {
			return err
		}
		runIDs[i] = id
	}

	opts := transpile.Options{Seed: runSeed}
	simulate := func(ctx context.Context, task runner.Task) (runner.Result, error) {
		start := time.Now()
		c, err := gen(task.NQubits)
		if err != nil {
			return runner.Result{}, err
		}
		res, err := transpile.Compile(c, dev, cfg.QubitsLayout, opts)
		if err != nil {
			return runner.Result{}, err
		}
		return runner.Result{
			NQubits: task.NQubits,
			Elapsed: time.Since(start),
			Payload: sweepRow{
				nqubits:  task.NQubits,
				gates:    len(res.Circuit.Gates),
				depth:    res.Circuit.Depth(),
				makespan: res.Makespan,
			},
		}, nil
	}

	rows, runErr := executeSweep(cmd.Context(), cfg, tasks, runIDs, catalog, simulate)
	if len(rows) > 0 {
		sort.Slice(rows, func(i, j int) bool { return rows[i].nqubits < rows[j].nqubits })
		out := filepath.Join(cfg.OutputDir, cfg.Name+"_summary.txt")
		m := make([][]float64, len(rows))
		for i, r := range rows {
			m[i] = []float64{float64(r.nqubits), float64(r.gates), float64(r.depth), float64(r.makespan.Nanoseconds())}
		}
		if err := postprocess.WriteMatrix(out, m); err != nil {
			return err
		}
		logger.Info("wrote sweep summary", zap.String("path", out), zap.Int("rows", len(rows)))
	}
	return runErr
}

// executeSweep runs the tasks on the chosen runner and keeps the catalog in
// step with each outcome.
func executeSweep(ctx context.Context, cfg *config.Config, tasks []runner.Task, runIDs []string, catalog *store.Store, simulate runner.Simulation) ([]sweepRow, error) {
	if runSerial {
		logger.Info("mocking the parallel simulation; errors surface immediately")
		results, err := runner.RunSerial(ctx, tasks, simulate, logger)
		if err != nil {
			// Serial mode stops at the first failure; everything still
			// pending is marked failed so the catalog has no stuck runs.
			for i := len(results); i < len(runIDs); i++ {
				_ = catalog.Fail(runIDs[i], err)
			}
			return nil, err
		}
		rows := make([]sweepRow, 0, len(results))
		for i, res := range results {
			if err := catalog.Complete(runIDs[i], nil, res.Elapsed); err != nil {
				return nil, err
			}
			rows = append(rows, res.Payload.(sweepRow))
		}
		return rows, nil
	}

	pool := runner.NewPool(runner.WithWorkers(cfg.Workers), runner.WithLogger(logger))
	out, err := pool.RunUnordered(ctx, tasks, simulate)
	if err != nil {
		return nil, err
	}

	var rows []sweepRow
	var firstErr error
	for outcome := range out {
		id := runIDs[outcome.Task.Index]
		if outcome.Err != nil {
			logger.Error("simulation failed",
				zap.Int("nqubits", outcome.Task.NQubits),
				zap.Error(outcome.Err))
			if firstErr == nil {
				firstErr = outcome.Err
			}
			_ = catalog.Fail(id, outcome.Err)
			continue
		}
		logger.Info("simulated",
			zap.Int("nqubits", outcome.Result.NQubits),
			zap.Duration("elapsed", outcome.Result.Elapsed))
		if err := catalog.Complete(id, nil, outcome.Result.Elapsed); err != nil {
			return rows, err
		}
		rows = append(rows, outcome.Result.Payload.(sweepRow))
	}
	if firstErr != nil {
		return rows, fmt.Errorf("sweep finished with failures: %w", firstErr)
	}
	return rows, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plutoniumm/quantum-gates/internal/logging"
)

var (
	// Global flags
	verbose   bool
	configDir string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qgates",
	Short: "qgates - quantum circuit simulation experiment toolkit",
	Long: `qgates drives quantum-circuit simulation experiments end to end:
it builds and transpiles circuit sweeps for a target device, fans the
simulations out over a worker pool, scores result histograms against
reference data, and merges sharded output files.

Experiment configurations are read from the configuration/ directory;
run 'qgates run' without arguments to pick one interactively.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "configuration", "directory experiment configs are read from")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(transpileCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(runsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plutoniumm/quantum-gates/internal/counts"
	"github.com/plutoniumm/quantum-gates/internal/distance"
	"github.com/plutoniumm/quantum-gates/internal/store"
)

var (
	scoreQubits  int
	scoreRunID   string
	scoreResults string
)

var scoreCmd = &cobra.Command{
	Use:   "score <counts-a.json> <counts-b.json>",
	Short: "Compare two measurement histograms",
	Long: `Reads two raw histogram files (JSON objects mapping bitstrings to
shot counts, as dumped by the experiment drivers), normalizes both into
standard convention, and prints the Hellinger and total variation
distances between them.

With --run the Hellinger distance is also attached to the given run in
the catalog.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadCounts(args[0], scoreQubits)
		if err != nil {
			return err
		}
		b, err := loadCounts(args[1], scoreQubits)
		if err != nil {
			return err
		}

		h, err := distance.HellingerCounts(a, b)
		if err != nil {
			return err
		}
		p, err := counts.Probabilities(a)
		if err != nil {
			return err
		}
		q, err := counts.Probabilities(b)
		if err != nil {
			return err
		}
		tv, err := distance.TotalVariation(p, q)
		if err != nil {
			return err
		}

		fmt.Printf("hellinger:       %.6f\n", h)
		fmt.Printf("total variation: %.6f\n", tv)

		if scoreRunID != "" {
			catalog, err := store.NewStore(scoreResults)
			if err != nil {
				return err
			}
			defer catalog.Close()
			if err := catalog.Score(scoreRunID, h); err != nil {
				return err
			}
			fmt.Printf("attached to run %s\n", scoreRunID)
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().IntVarP(&scoreQubits, "qubits", "q", 0, "register size (required)")
	scoreCmd.Flags().StringVar(&scoreRunID, "run", "", "run ID to attach the score to")
	scoreCmd.Flags().StringVar(&scoreResults, "results", "results", "run catalog directory")
	_ = scoreCmd.MarkFlagRequired("qubits")
}

func loadCounts(path string, nqubits int) ([]counts.Bin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	bins, err := counts.Normalize(raw, nqubits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bins, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

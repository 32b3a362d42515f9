package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/plutoniumm/quantum-gates/internal/store"
)

var (
	runsLimit   int
	runsResults string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent runs from the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := store.NewStore(runsResults)
		if err != nil {
			return err
		}
		defer catalog.Close()

		runs, err := catalog.List(runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEXPERIMENT\tDEVICE\tQUBITS\tSTATUS\tHELLINGER\tELAPSED\tSTARTED")
		for _, r := range runs {
			hellinger := "-"
			if r.Hellinger.Valid {
				hellinger = fmt.Sprintf("%.4f", r.Hellinger.Float64)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
				r.ID[:8], r.Experiment, r.Device, r.NQubits, r.Status,
				hellinger, r.Elapsed.Round(time.Millisecond), r.StartedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum number of runs to show")
	runsCmd.Flags().StringVar(&runsResults, "results", "results", "run catalog directory")
}

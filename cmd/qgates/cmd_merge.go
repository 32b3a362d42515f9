package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plutoniumm/quantum-gates/internal/postprocess"
)

var (
	mergeSplit   int
	mergeTargets string
	mergeWait    time.Duration
)

var mergeCmd = &cobra.Command{
	Use:   "merge [source files...]",
	Short: "Average sharded result files into combined targets",
	Long: `Averages each consecutive group of --split source files into the
corresponding target file. Used after runs that were sharded across
several jobs, or repeated with a reduced shot count.

Example:
  qgates merge --split 10 --targets t1.txt,...,t10.txt shard*.txt

With --wait the command first waits (up to the given duration) for all
source files to appear, for pipelines whose producers finish at their
own pace.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := splitList(mergeTargets)
		if len(targets) == 0 {
			return fmt.Errorf("no targets given, use --targets")
		}

		if mergeWait > 0 {
			dir := filepath.Dir(args[0])
			names := make([]string, len(args))
			for i, src := range args {
				if filepath.Dir(src) != dir {
					return fmt.Errorf("--wait requires all sources in one directory, got %s and %s", dir, filepath.Dir(src))
				}
				names[i] = filepath.Base(src)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), mergeWait)
			defer cancel()
			logger.Info("waiting for source files",
				zap.String("dir", dir),
				zap.Int("files", len(names)),
				zap.Duration("timeout", mergeWait))
			if err := postprocess.WaitForFiles(ctx, dir, names); err != nil {
				return err
			}
		}

		return postprocess.MergeSplit(args, targets, mergeSplit, logger)
	},
}

func init() {
	mergeCmd.Flags().IntVar(&mergeSplit, "split", 0, "number of source files per target (required, > 1)")
	mergeCmd.Flags().StringVar(&mergeTargets, "targets", "", "comma-separated target filenames")
	mergeCmd.Flags().DurationVar(&mergeWait, "wait", 0, "wait up to this long for sources to appear")
	_ = mergeCmd.MarkFlagRequired("split")
	_ = mergeCmd.MarkFlagRequired("targets")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

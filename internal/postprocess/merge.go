package postprocess

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// MergeSplit averages each consecutive group of split source files into the
// corresponding target file. It is the post-processing step for runs that
// were sharded: either split > 1 was used, or the shot count was reduced
// and the experiment repeated.
//
// Example: 100 sources, 10 targets, split 10 averages sources[0:10] into
// targets[0], sources[10:20] into targets[1], and so on.
func MergeSplit(sources, targets []string, split int, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if err := validateMerge(sources, targets, split); err != nil {
		return err
	}

	for t, target := range targets {
		group := sources[t*split : (t+1)*split]
		sum, err := ReadMatrix(group[0])
		if err != nil {
			return err
		}
		for _, src := range group[1:] {
			m, err := ReadMatrix(src)
			if err != nil {
				return err
			}
			if err := addInto(sum, m); err != nil {
				return fmt.Errorf("%w (merging %s)", err, src)
			}
		}
		scale(sum, 1/float64(split))
		if err := WriteMatrix(target, sum); err != nil {
			return err
		}
		log.Info("merged shard group",
			zap.String("target", target),
			zap.Int("sources", len(group)))
	}
	return nil
}

func validateMerge(sources, targets []string, split int) error {
	if split <= 1 {
		return fmt.Errorf("postprocess: split %d makes no sense, need > 1", split)
	}
	if split*len(targets) != len(sources) {
		return fmt.Errorf("postprocess: %d sources with split %d do not fill %d targets",
			len(sources), split, len(targets))
	}
	var missing []string
	for _, src := range sources {
		if !isFile(src) {
			missing = append(missing, src)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("postprocess: missing source files: %v", missing)
	}
	for _, target := range targets {
		if isFile(target) {
			return fmt.Errorf("postprocess: target %s already exists", target)
		}
	}
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

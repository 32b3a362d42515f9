package postprocess

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WaitForFiles blocks until every named file exists in dir. Producers
// (simulation shards) finish at their own pace, so a merge scheduled after
// a run may have to wait for the last shards to land. Cancellation is the
// caller's timeout mechanism.
func WaitForFiles(ctx context.Context, dir string, names []string) error {
	pending := make(map[string]bool, len(names))
	for _, name := range names {
		pending[name] = true
	}
	for name := range pending {
		if isFile(filepath.Join(dir, name)) {
			delete(pending, name)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("postprocess: start watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("postprocess: watch %s: %w", dir, err)
	}

	// Files may have landed between the stat pass and the watch starting.
	for name := range pending {
		if isFile(filepath.Join(dir, name)) {
			delete(pending, name)
		}
	}

	for len(pending) > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("postprocess: waiting for %d files in %s: %w", len(pending), dir, ctx.Err())
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("postprocess: watcher closed while waiting on %s", dir)
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if pending[name] && isFile(event.Name) {
				delete(pending, name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("postprocess: watcher closed while waiting on %s", dir)
			}
			return fmt.Errorf("postprocess: watcher: %w", err)
		}
	}
	return nil
}

// Package watch re-runs a callback when watched files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts of writes, such as a server flushing every
// player's stats at once.
const DefaultDebounce = 2 * time.Second

const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher watches directories and calls OnChange once per burst of relevant
// events. OnChange runs on the Run goroutine, so calls never overlap.
type Watcher struct {
	Dirs     []string
	Match    func(path string) bool // nil matches everything
	Debounce time.Duration
	OnChange func()
	Log      *zap.Logger
}

// Run blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.Dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.Log.Info("watching for changes", zap.String("dir", dir))
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			if w.Match != nil && !w.Match(event.Name) {
				continue
			}
			w.Log.Debug("change detected", zap.String("file", filepath.Base(event.Name)), zap.Stringer("op", event.Op))
			timer.Reset(debounce)

		case <-timer.C:
			w.OnChange()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Files returns a Match func accepting paths with one of the given base names
// or extensions (".json").
func Files(patterns ...string) func(string) bool {
	return func(path string) bool {
		base := filepath.Base(path)
		for _, p := range patterns {
			if base == p || (len(p) > 0 && p[0] == '.' && filepath.Ext(base) == p) {
				return true
			}
		}
		return false
	}
}

// Package watcher monitors a git directory for reference changes and fires
// a debounced callback. It backs the `relver watch` command: new commits or
// tags touch files under .git, which triggers a recompute of the next
// version.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of events (a single git operation often
// touches several files) into one callback.
const DefaultDebounce = 200 * time.Millisecond

// Watcher invokes a callback when the watched git directory changes.
type Watcher struct {
	gitDir   string
	debounce time.Duration
	onChange func()
}

// New creates a watcher over gitDir. A debounce of 0 uses DefaultDebounce.
func New(gitDir string, debounce time.Duration, onChange func()) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{gitDir: gitDir, debounce: debounce, onChange: onChange}
}

// Run watches until the context is cancelled. The git dir itself plus its
// refs directories are watched; fsnotify is not recursive, so the relevant
// subdirectories are added explicitly when they exist.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.gitDir); err != nil {
		return fmt.Errorf("watching %s: %w", w.gitDir, err)
	}
	for _, sub := range []string{"refs", filepath.Join("refs", "heads"), filepath.Join("refs", "tags")} {
		dir := filepath.Join(w.gitDir, sub)
		if _, err := os.Stat(dir); err == nil {
			if err := fsw.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
		}
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(event) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.onChange)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

// shouldIgnoreEvent filters out noise: lock files git creates around every
// operation and permission-only changes.
func shouldIgnoreEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	return strings.HasSuffix(event.Name, ".lock")
}

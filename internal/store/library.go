package store

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kindled/noaas/internal/reason"
	"github.com/kindled/noaas/internal/ui"
)

// Library holds the in-memory corpus snapshot. Reload swaps the whole
// snapshot atomically, so concurrent readers always see either the old or
// the new corpus, never a half-replaced one.
type Library struct {
	path     string
	snapshot atomic.Pointer[reason.Corpus]
}

// NewLibrary creates a library over the dataset at path without loading it.
func NewLibrary(path string) *Library {
	l := &Library{path: path}
	empty := reason.Corpus{}
	l.snapshot.Store(&empty)
	return l
}

// Path returns the dataset location backing the library.
func (l *Library) Path() string {
	return l.path
}

// Snapshot returns the current corpus. The returned slice must be treated
// as read-only.
func (l *Library) Snapshot() reason.Corpus {
	return *l.snapshot.Load()
}

// Reload reads the dataset from disk and swaps it in, returning the record
// count. On failure the previous snapshot stays in place.
func (l *Library) Reload() (int, error) {
	corpus, err := Load(l.path)
	if err != nil {
		return 0, err
	}
	if err := reason.Validate(corpus); err != nil {
		return 0, err
	}
	l.snapshot.Store(&corpus)
	return len(corpus), nil
}

// debounce absorbs the burst of events an editor or atomic rename produces
// for a single logical change.
const debounce = 200 * time.Millisecond

// Watch reloads the library whenever the dataset file changes, until ctx is
// done. The parent directory is watched rather than the file so atomic
// replaces (rename over the path) keep being observed.
func (l *Library) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		return err
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(l.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			n, err := l.Reload()
			if err != nil {
				ui.Logger.Error("reload failed, keeping previous corpus", "path", l.path, "err", err)
				continue
			}
			ui.Logger.Info("corpus reloaded", "path", l.path, "reasons", n)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			ui.Logger.Warn("watcher error", "err", err)
		}
	}
}

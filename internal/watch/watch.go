// Package watch reloads user sheets when their directory changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roach88/liz/internal/store"
)

// DefaultDebounce batches the burst of events an editor produces on save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls onChange once per burst of sheet file changes in one directory.
// Subdirectories are not watched, matching the non-recursive sheet import.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	dir      string
	debounce time.Duration
	onChange func(ctx context.Context)
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New creates a watcher for dir. A non-positive debounce uses DefaultDebounce.
func New(dir string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsw:      fsw,
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.running = true
	slog.Info("watching sheets", "dir", w.dir)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the loop to exit. Safe to call
// without Start and more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.fsw.Close(); err != nil {
		slog.Warn("closing sheet watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			slog.Debug("sheet changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("sheet watcher error", "error", err)

		case <-timer.C:
			w.onChange(ctx)
		}
	}
}

// relevant reports whether event touches a sheet file in a way that can
// change its records. Chmod-only events are ignored.
func relevant(event fsnotify.Event) bool {
	if !store.IsSheetFile(event.Name) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/watch/watch.go
// Summary: Debounced change notifications for a single file.
// Usage: The edit command reloads the form when the document changes on disk.

// Package watch reports changes to one file. The parent directory is
// watched so atomic replace-by-rename saves are seen as well.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/framegrace/nestedjson/internal/logging"
)

// DefaultDebounce applies when a non-positive debounce is given.
const DefaultDebounce = 200 * time.Millisecond

// ErrStopped is returned by Start once Stop has released the watcher.
var ErrStopped = errors.New("watch: watcher stopped")

// Stats counts what the watcher has seen.
type Stats struct {
	Events    int
	Callbacks int
	Errors    int
}

// Watcher calls onChange once a burst of events on the file has settled.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(path string)

	lastEvent time.Time
	pending   bool

	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
	stopped   bool
	closeOnce sync.Once
	stats     Stats
}

// New prepares a watcher for path. Nothing is watched until Start.
func New(path string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Start begins watching. The loop ends when ctx is cancelled or Stop is
// called. A Watcher is single use: after Stop, Start returns ErrStopped and a
// new Watcher is needed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return ErrStopped
	}
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return ErrStopped
	}
	w.running = true
	w.mu.Unlock()
	logging.S().Debugf("Watch: watching %s", w.path)
	go w.run(ctx)
	return nil
}

// Stop ends the loop, waits for it to exit and releases the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.stopped = true
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			logging.S().Warnf("Watch: error closing watcher: %v", err)
		}
	})
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.S().Warnf("Watch: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		case now := <-ticker.C:
			w.fireIfSettled(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	w.mu.Lock()
	w.stats.Events++
	w.lastEvent = time.Now()
	w.pending = true
	w.mu.Unlock()
}

func (w *Watcher) fireIfSettled(now time.Time) {
	w.mu.Lock()
	if !w.pending || now.Sub(w.lastEvent) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.stats.Callbacks++
	w.mu.Unlock()

	logging.S().Debugf("Watch: %s changed", w.path)
	if w.onChange != nil {
		w.onChange(w.path)
	}
}

// Package watcher keeps catalog components in sync with their source
// directories. File creations, removals and renames trigger a debounced
// rescan of the owning component; file content changes are deliberately
// ignored, matching the session-scoped record cache.
package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Scanner is the slice of a catalog component the watcher drives.
type Scanner interface {
	Rescan() error
}

// Watcher rescans registered components when their folders change.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	targets map[string]Scanner // folder → component

	started  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// New creates a stopped watcher. Call Watch to register folders, then
// Start.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fs watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		debounce: 500 * time.Millisecond,
		targets:  make(map[string]Scanner),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch registers folder so that key-affecting changes rescan s.
func (w *Watcher) Watch(folder string, s Scanner) error {
	if err := w.fsw.Add(folder); err != nil {
		return fmt.Errorf("watching %s: %w", folder, err)
	}
	w.mu.Lock()
	w.targets[filepath.Clean(folder)] = s
	w.mu.Unlock()
	return nil
}

// Start begins delivering rescans in a background goroutine.
func (w *Watcher) Start() {
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.loop()
}

// Stop halts the watcher and waits for the delivery goroutine to exit.
// Safe to call on a watcher that was never started.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.mu.Lock()
		started := w.started
		w.mu.Unlock()
		if started {
			<-w.doneCh
		}
		w.fsw.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	var timer *time.Timer
	var timerC <-chan time.Time
	dirty := make(map[string]bool)

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			dirty[filepath.Clean(filepath.Dir(event.Name))] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		case <-timerC:
			timerC = nil
			w.flush(dirty)
			dirty = make(map[string]bool)
		}
	}
}

func (w *Watcher) flush(dirty map[string]bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for folder := range dirty {
		s, ok := w.targets[folder]
		if !ok {
			continue
		}
		if err := s.Rescan(); err != nil {
			log.Printf("rescan of %s failed: %v", folder, err)
		}
	}
}

// Package watcher provides a debounced filesystem watcher for schema
// files, used by watch-mode generation.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches directories recursively and fires a callback with the
// batch of changed schema files after a quiet period.
type Watcher struct {
	watcher      *fsnotify.Watcher
	rootDir      string
	ext          string // file extension to monitor, e.g. ".steamd"
	debounceTime time.Duration
	callback     func(files []string)

	accumulated   map[string]bool
	accumulatedMu sync.Mutex
	debounceTimer *time.Timer
	timerMu       sync.Mutex
	stopOnce      sync.Once
	doneCh        chan struct{}
	cancel        context.CancelFunc
}

// New creates a watcher over rootDir for files with the given extension.
func New(rootDir, ext string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:      fsw,
		rootDir:      rootDir,
		ext:          ext,
		debounceTime: debounce,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirsRecursively(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching. The callback receives batches of changed files
// after each debounce window. Start does not block.
func (w *Watcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}
	w.callback = callback
	ctx, w.cancel = context.WithCancel(ctx)

	go w.watch(ctx)
	return nil
}

// Stop stops the watcher. Idempotent.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
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
			log.Printf("Warning: watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories need to be added to the watch set.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirsRecursively(event.Name); err != nil {
				log.Printf("Warning: failed to watch %s: %v", event.Name, err)
			}
			return
		}
	}

	if filepath.Ext(event.Name) != w.ext {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	w.accumulatedMu.Lock()
	w.accumulated[event.Name] = true
	w.accumulatedMu.Unlock()

	w.resetDebounce()
}

// resetDebounce restarts the quiet-period timer; the callback fires only
// once events stop arriving for a full window.
func (w *Watcher) resetDebounce() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceTime, w.flush)
}

func (w *Watcher) flush() {
	w.accumulatedMu.Lock()
	files := make([]string, 0, len(w.accumulated))
	for f := range w.accumulated {
		files = append(files, f)
	}
	w.accumulated = make(map[string]bool)
	w.accumulatedMu.Unlock()

	if len(files) > 0 {
		w.callback(files)
	}
}

func (w *Watcher) addDirsRecursively(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

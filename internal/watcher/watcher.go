// Package watcher re-runs the full generation pass when files under the root
// change. Regeneration is never incremental; the watcher only automates the
// re-run.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/edusite/indexgen/internal/config"
)

// debounceDelay coalesces event bursts (editors often write several times)
// into a single regeneration.
const debounceDelay = 500 * time.Millisecond

// Callback is invoked after changes settle.
type Callback func()

// Watcher monitors the resource tree for changes.
type Watcher struct {
	watcher *fsnotify.Watcher
	cfg     *config.Config
	root    string
	log     *zap.Logger

	mu       sync.Mutex
	callback Callback
	timer    *time.Timer

	done chan struct{}
}

// New creates a watcher over the given root directory.
func New(cfg *config.Config, root string, log *zap.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher: w,
		cfg:     cfg,
		root:    root,
		log:     log,
		done:    make(chan struct{}),
	}, nil
}

// OnChange registers the callback invoked after changes settle.
func (w *Watcher) OnChange(cb Callback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callback = cb
}

// Start begins watching every directory under the root except ignored ones.
func (w *Watcher) Start() error {
	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.cfg.IsIgnoredDir(info.Name()) && path != w.root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.log.Warn("cannot watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Base(event.Name)

	// Writes of generated pages must not retrigger generation.
	if name == "index.html" {
		return
	}
	if w.cfg.IsIgnoredDir(name) || w.cfg.IsIgnoredFile(name) {
		return
	}

	// Watch newly created directories so deeper changes are seen too.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.log.Warn("cannot watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}

	w.log.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		cb := w.callback
		w.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

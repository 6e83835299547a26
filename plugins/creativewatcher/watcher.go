// Package creativewatcher provides creative hot reload for the harness.
// It watches a creative parameter file for changes and, after a debounce
// delay, invokes a reload callback so the host can restart the session
// with the edited parameters.
package creativewatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/admesh-labs/adunit/pkg/log"
)

// Config holds configuration options for the creative watcher.
type Config struct {
	// Path is the creative parameter file to watch.
	Path string

	// DebounceDelay is the delay to wait after a file change before
	// invoking the callback. Editors often produce several events per
	// save. Default: 100 milliseconds.
	DebounceDelay time.Duration
}

// DefaultDebounceDelay is applied when Config.DebounceDelay is zero.
const DefaultDebounceDelay = 100 * time.Millisecond

// Watcher monitors a creative parameter file and reports debounced changes.
type Watcher struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration

	logger   log.Logger
	onChange func(path string)

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// New creates a creative watcher with the given configuration.
func New(cfg Config) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultDebounceDelay
	}
	return &Watcher{
		path:          filepath.Clean(cfg.Path),
		debounceDelay: cfg.DebounceDelay,
	}
}

// Start begins watching. onChange is invoked (from the watcher goroutine,
// debounced) with the file path each time the creative file changes.
// A nil logger defaults to the no-op logger.
func (w *Watcher) Start(ctx context.Context, logger log.Logger, onChange func(path string)) error {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if onChange == nil {
		return fmt.Errorf("creativewatcher: onChange callback is required")
	}
	if w.path == "" || w.path == "." {
		return fmt.Errorf("creativewatcher: path is required")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creativewatcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files by rename,
	// which drops file-level watches.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("creativewatcher: watch %s: %w", filepath.Dir(w.path), err)
	}

	runCtx, cancel := context.WithCancel(ctx)

	w.mu.Lock()
	w.logger = logger
	w.onChange = onChange
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(runCtx, fw)

	logger.Info("watching creative file", log.String("path", w.path))
	return nil
}

// Stop cancels the watcher and waits for its goroutine to exit.
// Safe to call when not started.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	if w.debounce != nil {
		w.debounce.Stop()
		w.debounce = nil
	}
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer func() { _ = fw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("creative watch error", log.Err(err))
		}
	}
}

// scheduleReload arms (or re-arms) the debounce timer.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Reset(w.debounceDelay)
		return
	}
	w.debounce = time.AfterFunc(w.debounceDelay, func() {
		w.mu.Lock()
		onChange := w.onChange
		w.debounce = nil
		w.mu.Unlock()

		if onChange != nil {
			w.logger.Info("creative file changed", log.String("path", w.path))
			onChange(w.path)
		}
	})
}

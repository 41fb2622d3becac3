// Package watcher watches the corpus file and triggers re-indexing on change.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher observes a single file and invokes a callback after changes settle.
// Editors typically produce bursts of write/rename events for one save, so
// events are debounced before the callback fires.
type Watcher struct {
	path     string
	onChange func()
	debounce time.Duration
	logger   *zap.Logger

	fw   *fsnotify.Watcher
	mu   sync.Mutex
	tick *time.Timer

	stopOnce sync.Once
	done     chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// WithDebounce overrides the settle interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for path that calls onChange after each settled
// change burst.
func New(path string, onChange func(), opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The containing directory is watched rather than the
// file itself so rename-style saves keep working. Runs until ctx is cancelled
// or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fw = fw
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}
	w.logger.Info("watching corpus file", zap.String("path", w.path))

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.fw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleChange()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) scheduleChange() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tick != nil {
		w.tick.Stop()
	}
	w.tick = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.logger.Info("corpus file changed", zap.String("path", w.path))
		w.onChange()
	})
}

// Stop ends the watch. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.tick != nil {
			w.tick.Stop()
		}
		w.mu.Unlock()
	})
}

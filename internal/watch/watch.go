// Package watch reports changes under a context directory so the document
// can be regenerated.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ctxgen/internal/logging"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a directory tree and emits one signal per burst of
// filesystem events.
type Watcher struct {
	root     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	changes  chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	ignored  map[string]struct{}
}

// New creates a watcher for root. Call Start to begin watching.
func New(root string, debounce time.Duration, logger *logging.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}

	return &Watcher{
		root:     root,
		debounce: debounce,
		watcher:  watcher,
		logger:   logger.Named("watch"),
		changes:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
		ignored:  make(map[string]struct{}),
	}, nil
}

// Ignore drops events for the given file paths. It must be called before
// Start. Used for files the caller itself writes inside the watched tree.
func (w *Watcher) Ignore(paths ...string) {
	for _, p := range paths {
		w.ignored[absPath(p)] = struct{}{}
	}
}

func (w *Watcher) isIgnored(path string) bool {
	if len(w.ignored) == 0 {
		return false
	}
	_, ok := w.ignored[absPath(path)]
	return ok
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Start registers root and all its sub-directories, following symlinks,
// then processes events in a background goroutine until ctx is done or Stop
// is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.root); err != nil {
		return fmt.Errorf("watching %s: %w", w.root, err)
	}
	w.addTree(ctx, w.root, make(map[string]struct{}))

	go w.processEvents(ctx)
	return nil
}

// Changes delivers a signal after each debounced burst of events. Signals
// are coalesced while the receiver is busy.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Stop stops the watcher and releases its resources.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()
	})
}

// addTree watches every directory below dir. Failures only skip the entry.
func (w *Watcher) addTree(ctx context.Context, dir string, ancestors map[string]struct{}) {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return
	}
	if _, ok := ancestors[real]; ok {
		return
	}
	ancestors[real] = struct{}{}
	defer delete(ancestors, real)

	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Debug(ctx, "cannot watch directory", zap.String("path", path), zap.Error(err))
			continue
		}
		w.addTree(ctx, path, ancestors)
	}
}

// processEvents debounces filesystem events into change signals.
func (w *Watcher) processEvents(ctx context.Context) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || w.isIgnored(event.Name) {
				continue
			}
			w.handleEvent(ctx, event)

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, "watch error", zap.Error(err))
		}
	}
}

// handleEvent starts watching directories created after Start.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	w.logger.Trace(ctx, "filesystem event",
		zap.String("path", event.Name),
		zap.String("op", event.Op.String()),
	)

	if !event.Has(fsnotify.Create) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(event.Name); err != nil {
		w.logger.Debug(ctx, "cannot watch directory", zap.String("path", event.Name), zap.Error(err))
		return
	}
	w.addTree(ctx, event.Name, make(map[string]struct{}))
}

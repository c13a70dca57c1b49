package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// skippedDirectories are never watched.
var skippedDirectories = map[string]bool{
	".git":                true,
	".jj":                 true,
	"node_modules":        true,
	domain.NgbuildDirName: true,
}

const changesBuffer = 16

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	logger    ports.Logger
	window    time.Duration
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	ignore    map[string]bool
	stopOnce  sync.Once

	mu      sync.Mutex
	changes chan []string
	closed  bool
}

// NewWatcher creates a watcher that coalesces events over window.
func NewWatcher(logger ports.Logger, window time.Duration) *Watcher {
	return &Watcher{
		logger:  logger,
		window:  window,
		changes: make(chan []string, changesBuffer),
	}
}

// Start begins watching root recursively.
func (w *Watcher) Start(ctx context.Context, root string, ignore []string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}
	w.fsWatcher = fsWatcher

	w.ignore = make(map[string]bool, len(ignore))
	for _, dir := range ignore {
		w.ignore[filepath.Clean(dir)] = true
	}

	w.debouncer = NewDebouncer(w.window, w.publish)

	for dir := range w.directories(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			_ = w.fsWatcher.Close()
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherStartFailed.Error()), "path", dir)
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.debouncer != nil {
			w.debouncer.Stop()
		}
		if w.fsWatcher != nil {
			err = w.fsWatcher.Close()
		}
	})
	return err
}

// Changes yields batches of changed paths.
func (w *Watcher) Changes() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for paths := range w.changes {
			if !yield(paths) {
				return
			}
		}
	}
}

// directories walks the tree below root and yields every directory to watch.
func (w *Watcher) directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are not watched
			}
			if !d.IsDir() {
				return nil
			}
			if w.skipped(path, d.Name()) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) skipped(path, name string) bool {
	return skippedDirectories[name] || w.ignore[filepath.Clean(path)]
}

// ignored reports whether path lies inside an ignored directory.
func (w *Watcher) ignored(path string) bool {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if w.skipped(dir, filepath.Base(dir)) {
			return true
		}
		if parent := filepath.Dir(dir); parent == dir {
			return false
		}
	}
}

// publish queues a batch. When the queue is full the batch is dropped, since
// the queued rebuild reads the files anyway.
func (w *Watcher) publish(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.changes <- paths:
	default:
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.closed = true
		close(w.changes)
		w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !relevant(event) || w.ignored(event.Name) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.skipped(event.Name, info.Name()) {
					for dir := range w.directories(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

			w.debouncer.Add(event.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher: " + err.Error())
		}
	}
}

// relevant drops attribute-only changes.
func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

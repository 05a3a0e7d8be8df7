package dataset

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates cache entries as soon as a watched input file changes on
// disk, so the next load does not wait on a stat to notice. Remote sources are
// not watched.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	cache       *Cache
	logger      *zap.Logger
	files       map[string]bool // absolute path -> watched
	pending     map[string]time.Time
	debounceDur time.Duration
	onChange    func(path string)
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	closed      bool
}

// NewWatcher creates a watcher over the file sources among srcs
func NewWatcher(cache *Cache, logger *zap.Logger, srcs ...Source) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		watcher:     fw,
		cache:       cache,
		logger:      logger,
		files:       make(map[string]bool),
		pending:     make(map[string]time.Time),
		debounceDur: 200 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	for _, src := range srcs {
		if fs, ok := src.(FileSource); ok {
			w.files[fs.Key()] = true
		}
	}
	return w, nil
}

// OnChange registers a callback fired after an entry is invalidated
func (w *Watcher) OnChange(fn func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start watches the parent directories of the input files. It does not block.
// Directories are watched rather than files so editors that replace a file by
// rename are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running || w.closed {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dirs := make(map[string]bool)
	for path := range w.files {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("watch failed", zap.String("dir", dir), zap.Error(err))
			continue
		}
		w.logger.Debug("watching directory", zap.String("dir", dir))
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher, waits for its goroutine to exit and releases the
// underlying inotify handle. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("error closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounceDur / 2)
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
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.files[path] {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

// flush invalidates every path that has been quiet for the debounce window
func (w *Watcher) flush() {
	w.mu.Lock()
	var ready []string
	for path, seen := range w.pending {
		if time.Since(seen) >= w.debounceDur {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	onChange := w.onChange
	w.mu.Unlock()

	for _, path := range ready {
		w.cache.Invalidate(path)
		w.logger.Info("input file changed", zap.String("path", path))
		if onChange != nil {
			onChange(path)
		}
	}
}

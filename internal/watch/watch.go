// Package watch reruns a callback when files under the site root change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// Config selects what to watch.
type Config struct {
	// Root is walked recursively; every directory gets a watch.
	Root string
	// Include patterns are doublestar globs relative to Root. Empty matches all.
	Include []string
	// Exclude patterns win over Include.
	Exclude  []string
	Debounce time.Duration
}

// Watcher batches file changes and hands them to a callback.
type Watcher struct {
	cfg     Config
	fsw     *fsnotify.Watcher
	logger  *slog.Logger
	onBatch func(paths []string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	closed  bool
	// flushing tracks onBatch calls in progress so Run returns after them.
	flushing sync.WaitGroup
}

// New creates a watcher. onBatch receives the sorted, root-relative paths
// that changed during one debounce window.
func New(cfg Config, logger *slog.Logger, onBatch func(paths []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Watcher{
		cfg:     cfg,
		fsw:     fsw,
		logger:  logger,
		onBatch: onBatch,
		pending: make(map[string]struct{}),
	}, nil
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	if err := w.addRecursive(w.cfg.Root); err != nil {
		return err
	}
	w.logger.Info("Watching for changes", "root", w.cfg.Root, "debounce", w.cfg.Debounce)

	for {
		select {
		case <-ctx.Done():
			w.stop()
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := d.Name()
		if path != root && strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}
		if rel, ok := w.rel(path); ok && rel != "." && w.excluded(rel) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	rel, ok := w.rel(event.Name)
	if !ok || !w.Match(rel) {
		return
	}
	w.logger.Debug("Change detected", "path", rel, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending[rel] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.cfg.Debounce, w.flush)
}

// stop cancels the pending batch and waits for a running onBatch. No
// batch is delivered afterwards.
func (w *Watcher) stop() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.flushing.Wait()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.flushing.Add(1)
	defer w.flushing.Done()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	w.onBatch(paths)
}

func (w *Watcher) rel(path string) (string, bool) {
	rel, err := filepath.Rel(w.cfg.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Match reports whether a root-relative path passes the include and
// exclude patterns.
func (w *Watcher) Match(rel string) bool {
	if w.excluded(rel) {
		return false
	}
	if len(w.cfg.Include) == 0 {
		return true
	}
	for _, p := range w.cfg.Include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) excluded(rel string) bool {
	for _, p := range w.cfg.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

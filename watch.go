package godbc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/golangcan/godbc/internal/types"
)

// Watcher re-parses DBC files when they change on disk.
type Watcher struct {
	paths   map[string]struct{}
	order   []string
	onParse func(Result)
	cache   *Cache
	types.Logger
}

// NewWatcher returns a watcher for the given files. onParse is called from
// the Run goroutine once per file at start and again after every write.
func NewWatcher(paths []string, onParse func(Result), opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoSource
	}
	cache, err := NewCache(max(2*len(paths), 16), opts...)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		paths:   make(map[string]struct{}, len(paths)),
		onParse: onParse,
		cache:   cache,
		Logger:  types.Logger{L: types.ComponentLogger(cache.cfg.logger, "watcher")},
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if _, dup := w.paths[abs]; !dup {
			w.paths[abs] = struct{}{}
			w.order = append(w.order, abs)
		}
	}
	return w, nil
}

// Run parses every file once and then watches for changes until ctx is
// done. Directories are watched rather than files so that editors which
// replace files by rename are followed.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dirs := make(map[string]struct{})
	for _, p := range w.order {
		dir := filepath.Dir(p)
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = struct{}{}
		w.Log(slog.LevelDebug, "watching path", slog.String("path", dir))
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	for _, p := range w.order {
		w.reparse(p)
	}

	mask := fsnotify.Create | fsnotify.Write
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evt.Op&mask == 0 {
				continue
			}
			name := filepath.Clean(evt.Name)
			if _, watched := w.paths[name]; !watched {
				continue
			}
			w.Log(slog.LevelDebug, "registered file event", slog.String("event", evt.String()))
			w.reparse(name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Log(slog.LevelWarn, "watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) reparse(path string) {
	start := time.Now()
	doc, err := w.cache.ParseFile(path)
	w.onParse(Result{
		Name:     networkName(path),
		Path:     path,
		Document: doc,
		Err:      err,
		Duration: time.Since(start),
	})
}

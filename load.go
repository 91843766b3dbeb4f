package godbc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/golangcan/godbc/dbc"
)

// ErrNoSource is returned when Load or LoadAll is called with a nil source.
var ErrNoSource = errors.New("no DBC source provided")

// Result is the outcome of parsing one file. Document is set on success
// and alongside an *IncompleteError.
type Result struct {
	Name     string
	Path     string
	Document *dbc.Document
	Err      error
	Duration time.Duration
}

// Load finds the named network in source and parses it.
//
// Example:
//
//	src, err := godbc.Dir("./networks")
//	...
//	doc, err := godbc.Load("powertrain", src)
func Load(name string, source Source, opts ...Option) (*dbc.Document, error) {
	if source == nil {
		return nil, ErrNoSource
	}
	r := loadOne(name, source, newConfig(opts))
	return r.Document, r.Err
}

// LoadAll parses every network in source in parallel. Results are sorted
// by name. Per-file failures are reported in Result.Err; the returned
// error is set only when the source cannot be listed or ctx is done.
func LoadAll(ctx context.Context, source Source, opts ...Option) ([]Result, error) {
	if source == nil {
		return nil, ErrNoSource
	}
	cfg := newConfig(opts)
	logger := cfg.logger

	names, err := source.Names()
	if err != nil {
		return nil, err
	}
	if logEnabled(logger, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel loading",
			slog.Int("files", len(names)))
	}

	results := make([]Result, len(names))
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())

	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			results[i] = loadOne(name, source, cfg)
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if logEnabled(logger, slog.LevelInfo) {
		failed := 0
		for _, r := range results {
			if r.Document == nil {
				failed++
			}
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel loading complete",
			slog.Int("files", len(results)),
			slog.Int("failed", failed))
	}
	return results, nil
}

func loadOne(name string, source Source, cfg config) Result {
	start := time.Now()
	res := Result{Name: name}
	rc, path, err := source.Find(name)
	res.Path = path
	if err != nil {
		res.Err = fmt.Errorf("finding %s: %w", name, err)
		return res
	}
	defer rc.Close()

	src, err := io.ReadAll(rc)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", path, err)
		return res
	}
	res.Document, res.Err = parse(src, cfg)
	if res.Err != nil {
		res.Err = fmt.Errorf("%s: %w", path, res.Err)
	}
	res.Duration = time.Since(start)

	if logEnabled(cfg.logger, slog.LevelDebug) {
		cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "loaded file",
			slog.String("name", name),
			slog.String("path", path),
			slog.Duration("duration", res.Duration),
			slog.Bool("ok", res.Err == nil))
	}
	return res
}

// logEnabled returns true if logging is enabled at the given level.
func logEnabled(logger *slog.Logger, level slog.Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}

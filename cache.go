package godbc

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/golangcan/godbc/dbc"
	"github.com/golangcan/godbc/internal/types"
)

type cacheEntry struct {
	src []byte // private copy, compared on every hit
	doc *dbc.Document
	err *IncompleteError
}

// Cache memoizes parse results by content. Entries are keyed by hash and
// hold a copy of the source, so a hash collision is a miss. Documents are immutable,
// so a cached document may be shared between callers. Syntax failures are
// not cached. A Cache is safe for concurrent use.
type Cache struct {
	cfg     config
	entries *lru.Cache[uint64, cacheEntry]
	types.Logger
}

// NewCache returns a cache holding up to size documents parsed with opts.
func NewCache(size int, opts ...Option) (*Cache, error) {
	cfg := newConfig(opts)
	entries, err := lru.New[uint64, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating parse cache: %w", err)
	}
	return &Cache{
		cfg:     cfg,
		entries: entries,
		Logger:  types.Logger{L: types.ComponentLogger(cfg.logger, "cache")},
	}, nil
}

// Parse is like the package-level Parse but returns a cached result when
// src was parsed before.
func (c *Cache) Parse(src []byte) (*dbc.Document, error) {
	key := xxhash.Sum64(src)
	if e, ok := c.entries.Get(key); ok {
		if bytes.Equal(e.src, src) {
			c.Trace("cache hit", slog.Uint64("key", key))
			if e.err != nil {
				return e.doc, e.err
			}
			return e.doc, nil
		}
		c.Log(slog.LevelDebug, "cache key collision", slog.Uint64("key", key))
	}

	own := bytes.Clone(src)
	doc, err := parse(own, c.cfg)
	var inc *IncompleteError
	switch {
	case err == nil:
		c.entries.Add(key, cacheEntry{src: own, doc: doc})
	case errors.As(err, &inc):
		c.entries.Add(key, cacheEntry{src: own, doc: doc, err: inc})
	}
	c.Trace("cache miss", slog.Uint64("key", key), slog.Bool("stored", doc != nil))
	return doc, err
}

// ParseFile reads path and parses it through the cache.
func (c *Cache) ParseFile(path string) (*dbc.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := c.Parse(src)
	if err != nil {
		return doc, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge removes all cached documents.
func (c *Cache) Purge() {
	c.entries.Purge()
}

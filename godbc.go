// Package godbc parses CAN database (DBC) files into a read-only document
// model.
//
// The grammar is strict and byte oriented: single spaces between fields are
// significant and no error recovery is attempted. Sections are recognized
// in their fixed order; when a section stops matching, the document parsed
// so far is returned together with an *IncompleteError describing the
// unconsumed remainder.
package godbc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golangcan/godbc/dbc"
	"github.com/golangcan/godbc/internal/parser"
	"github.com/golangcan/godbc/internal/types"
)

// ErrNoInput matches (via errors.Is) the SyntaxError returned for empty
// input: a failure at offset 0 because the input ended.
var ErrNoInput = errors.New("no DBC input provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-construct logging (each accepted section entry and the
// failed attempts that end a repetition).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures Parse, ParseFile and ParseReader.
type Option func(*config)

type config struct {
	logger            *slog.Logger
	integerAttributes bool
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithIntegerAttributeValues makes integral numeric attribute values
// (no fraction, no exponent) parse as unsigned or signed integers instead
// of floats.
func WithIntegerAttributeValues() Option {
	return func(c *config) { c.integerAttributes = true }
}

// Parse parses a DBC document.
//
// On success the error is nil. If the mandatory header (VERSION and NS_)
// cannot be recognized, the document is nil and the error is a
// *SyntaxError. If a prefix of the input forms a valid document but bytes
// remain, both the document and an *IncompleteError are returned.
//
// Example:
//
//	doc, err := godbc.Parse(src)
//	var inc *godbc.IncompleteError
//	if errors.As(err, &inc) {
//	    log.Printf("ignoring trailing data at line %d: %v", inc.Line, inc.Cause)
//	} else if err != nil {
//	    return err
//	}
func Parse(src []byte, opts ...Option) (*dbc.Document, error) {
	return parse(src, newConfig(opts))
}

// ParseFile reads and parses the file at path.
func ParseFile(path string, opts ...Option) (*dbc.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(src, opts...)
	if err != nil {
		return doc, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader, opts ...Option) (*dbc.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading DBC input: %w", err)
	}
	return Parse(src, opts...)
}

func parse(src []byte, cfg config) (*dbc.Document, error) {
	logger := types.Logger{L: cfg.logger}
	lines := types.NewLineTable(src)

	p := parser.New(src, types.ComponentLogger(cfg.logger, "parser"), parser.Options{
		IntegerAttributeValues: cfg.integerAttributes,
	})
	res, err := p.Parse()
	if err != nil {
		logger.Log(slog.LevelDebug, "parse failed", slog.String("error", err.Error()))
		return nil, newSyntaxError(err, lines)
	}

	doc := dbc.Lower(res.File, lines, types.ComponentLogger(cfg.logger, "lower"))
	if !res.Complete() {
		inc := newIncompleteError(doc, src, res, lines)
		logger.Log(slog.LevelDebug, "parse incomplete",
			slog.Int("line", inc.Line),
			slog.Int("column", inc.Column))
		return doc, inc
	}
	return doc, nil
}

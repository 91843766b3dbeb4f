// Package types provides internal types shared across godbc packages.
package types

import (
	"context"
	"log/slog"
	"slices"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item logging (accepted constructs, cache hits).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// ctx is a package-level context for logging.
var ctx = context.Background()

// Logger wraps slog.Logger with nil-safe helpers.
type Logger struct {
	L *slog.Logger
}

// Enabled returns true if logging is enabled at the given level.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(ctx, level)
}

// Log emits a log message if logging is enabled.
func (l *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.L != nil && l.L.Enabled(ctx, level) {
		l.L.LogAttrs(ctx, level, msg, attrs...)
	}
}

// TraceEnabled returns true if trace-level logging is enabled.
func (l *Logger) TraceEnabled() bool {
	return l.Enabled(LevelTrace)
}

// Trace emits a trace-level log.
func (l *Logger) Trace(msg string, attrs ...slog.Attr) {
	l.Log(LevelTrace, msg, attrs...)
}

// ComponentLogger returns a child logger tagged with the component name,
// or nil when logging is disabled.
func ComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

// ByteOffset is a byte position in source text.
type ByteOffset uint32

// Span represents a range in source text.
type Span struct {
	Start ByteOffset // inclusive
	End   ByteOffset // exclusive
}

// NewSpan creates a new span.
func NewSpan(start, end ByteOffset) Span {
	return Span{Start: start, End: end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() ByteOffset {
	return s.End - s.Start
}

// IsEmpty returns true if the span is empty.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// LineTable maps byte offsets to 1-based line and column numbers.
type LineTable struct {
	starts []ByteOffset // offset of the first byte of each line
	size   int
}

// NewLineTable indexes the line starts of source.
func NewLineTable(source []byte) *LineTable {
	starts := make([]ByteOffset, 1, 64)
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return &LineTable{starts: starts, size: len(source)}
}

// Position returns the line and column of offset. The offset just past
// the last byte is valid (end of input). Returns (0, 0) for a nil table
// or an offset beyond the end.
func (t *LineTable) Position(offset ByteOffset) (line, col int) {
	if t == nil || int(offset) > t.size {
		return 0, 0
	}
	i, _ := slices.BinarySearch(t.starts, offset+1)
	return i, int(offset-t.starts[i-1]) + 1
}

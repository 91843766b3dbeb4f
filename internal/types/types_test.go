package types

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineTablePosition(t *testing.T) {
	table := NewLineTable([]byte("line1\nline2\nline3\n"))

	tests := []struct {
		offset ByteOffset
		line   int
		col    int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{5, 1, 6},
		{6, 2, 1},
		{9, 2, 4},
		{12, 3, 1},
		{18, 4, 1},
	}
	for _, tt := range tests {
		line, col := table.Position(tt.offset)
		require.Equal(t, tt.line, line, "line at offset %d", tt.offset)
		require.Equal(t, tt.col, col, "col at offset %d", tt.offset)
	}
}

func TestLineTableOutOfRange(t *testing.T) {
	var nilTable *LineTable
	line, col := nilTable.Position(0)
	require.Zero(t, line)
	require.Zero(t, col)

	table := NewLineTable([]byte("abc"))
	line, col = table.Position(100)
	require.Zero(t, line)
	require.Zero(t, col)
}

func TestSpan(t *testing.T) {
	s := NewSpan(4, 10)
	require.Equal(t, ByteOffset(6), s.Len())
	require.False(t, s.IsEmpty())
	require.True(t, NewSpan(3, 3).IsEmpty())
}

func TestLoggerNilSafe(t *testing.T) {
	var l Logger
	require.False(t, l.Enabled(slog.LevelError))
	require.False(t, l.TraceEnabled())
	l.Trace("ignored")
	l.Log(slog.LevelInfo, "ignored")
	require.Nil(t, ComponentLogger(nil, "parser"))
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	l := Logger{L: ComponentLogger(base, "parser")}

	require.True(t, l.TraceEnabled())
	l.Trace("accepted", slog.String("rule", "message"))
	require.Contains(t, buf.String(), "component=parser")
	require.Contains(t, buf.String(), "rule=message")
}

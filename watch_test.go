package godbc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitResult(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for parse result")
		return Result{}
	}
}

func TestWatcherReparsesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.dbc")
	require.NoError(t, os.WriteFile(path, []byte("VERSION \"1\"\nNS_ :\n"), 0o644))

	results := make(chan Result, 16)
	w, err := NewWatcher([]string{path}, func(r Result) {
		select {
		case results <- r:
		default:
		}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	first := waitResult(t, results)
	require.NoError(t, first.Err)
	require.Equal(t, "net", first.Name)
	require.Equal(t, "1", first.Document.Version())

	require.NoError(t, os.WriteFile(path, []byte("VERSION \"2\"\nNS_ :\n"), 0o644))
	for {
		r := waitResult(t, results)
		if r.Err == nil && r.Document.Version() == "2" {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcherNoPaths(t *testing.T) {
	_, err := NewWatcher(nil, func(Result) {})
	require.ErrorIs(t, err, ErrNoSource)
}

func TestNewWatcherDeduplicates(t *testing.T) {
	w, err := NewWatcher([]string{"a.dbc", "./a.dbc"}, func(Result) {})
	require.NoError(t, err)
	require.Len(t, w.order, 1)
}

package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Watch(t *testing.T) {
	t.Run("reports writes to watched file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "weekly.toml")
		require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

		w, err := NewWatcher(path)
		require.NoError(t, err)
		w.settle = 10 * time.Millisecond
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			os.WriteFile(path, []byte("b"), 0o600) //nolint:errcheck
		}()

		select {
		case changed := <-changes:
			assert.Equal(t, "weekly.toml", filepath.Base(changed))
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for change")
		}
	})

	t.Run("ignores other files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "weekly.toml")
		require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

		w, err := NewWatcher(path)
		require.NoError(t, err)
		w.settle = 10 * time.Millisecond
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))

		select {
		case changed := <-changes:
			t.Fatalf("unexpected change: %s", changed)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		dir := t.TempDir()
		w, err := NewWatcher(filepath.Join(dir, "weekly.toml"))
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := w.Watch(ctx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("returns error for missing directory", func(t *testing.T) {
		w, err := NewWatcher("/non/existent/path/weekly.toml")
		require.NoError(t, err)

		changes, err := w.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, changes)
	})

	t.Run("returns error when closed", func(t *testing.T) {
		w, err := NewWatcher(filepath.Join(t.TempDir(), "weekly.toml"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.NoError(t, w.Close())

		changes, err := w.Watch(context.Background())

		assert.ErrorIs(t, err, ErrWatcherClosed)
		assert.Nil(t, changes)
	})
}

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weekly.toml")
	w, err := NewWatcher(path)
	require.NoError(t, err)

	tests := []struct {
		name string
		file string
		op   fsnotify.Op
		want bool
	}{
		{name: "write", file: path, op: fsnotify.Write, want: true},
		{name: "create", file: path, op: fsnotify.Create, want: true},
		{name: "remove", file: path, op: fsnotify.Remove, want: false},
		{name: "chmod", file: path, op: fsnotify.Chmod, want: false},
		{name: "other file", file: filepath.Join(dir, "x.toml"), op: fsnotify.Write, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(fsnotify.Event{Name: tt.file, Op: tt.op}))
		})
	}
}

package watcher

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

func TestWatcher_FiresOnRefChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "refs", "tags"), 0o755))

	fired := make(chan struct{}, 1)
	w := New(dir, 20*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register before generating events.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "refs", "tags", "v0.1.0"), []byte("abc\n"), 0o644))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change callback")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()

	var count int
	counted := make(chan struct{}, 10)
	w := New(dir, 100*time.Millisecond, func() {
		count++
		counted <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "HEAD"), []byte("ref\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-counted:
	case <-time.After(2 * time.Second):
		t.Fatal("expected at least one callback")
	}

	// A burst within the debounce window collapses to one callback.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, count)
}

func TestWatcher_MissingDirErrors(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent"), 0, func() {})
	err := w.Run(context.Background())
	require.Error(t, err)
}

func TestShouldIgnoreEvent(t *testing.T) {
	assert.True(t, shouldIgnoreEvent(fsnotify.Event{Name: "/repo/.git/index.lock", Op: fsnotify.Create}))
	assert.True(t, shouldIgnoreEvent(fsnotify.Event{Name: "/repo/.git/HEAD", Op: fsnotify.Chmod}))
	assert.False(t, shouldIgnoreEvent(fsnotify.Event{Name: "/repo/.git/refs/tags/v1.0.0", Op: fsnotify.Create}))
}

package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/adapters/watcher"
	"go.trai.ch/ngbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func nextBatch(t *testing.T, w *watcher.Watcher) []string {
	t.Helper()
	batches := make(chan []string, 1)
	go func() {
		for paths := range w.Changes() {
			batches <- paths
			return
		}
	}()
	select {
	case paths := <-batches:
		return paths
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch received")
		return nil
	}
}

func newWatcher(t *testing.T) *watcher.Watcher {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	w := watcher.NewWatcher(log, 20*time.Millisecond)
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o750))

	w := newWatcher(t)
	require.NoError(t, w.Start(t.Context(), root, nil))

	file := filepath.Join(src, "main.ts")
	require.NoError(t, os.WriteFile(file, []byte("export {};"), 0o600))

	assert.Contains(t, nextBatch(t, w), file)
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()

	w := newWatcher(t)
	require.NoError(t, w.Start(t.Context(), root, nil))

	dir := filepath.Join(root, "feature")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	assert.Contains(t, nextBatch(t, w), dir)

	file := filepath.Join(dir, "feature.ts")
	require.NoError(t, os.WriteFile(file, []byte("export {};"), 0o600))
	assert.Contains(t, nextBatch(t, w), file)
}

func TestWatcher_SkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	dist := filepath.Join(root, "dist")
	modules := filepath.Join(root, "node_modules")
	src := filepath.Join(root, "src")
	for _, dir := range []string{dist, modules, src} {
		require.NoError(t, os.MkdirAll(dir, 0o750))
	}

	w := newWatcher(t)
	require.NoError(t, w.Start(t.Context(), root, []string{dist}))

	require.NoError(t, os.WriteFile(filepath.Join(dist, "main.js"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(modules, "lib.js"), []byte("x"), 0o600))
	// Give the ignored writes time to be dropped before the relevant one.
	time.Sleep(100 * time.Millisecond)
	file := filepath.Join(src, "main.ts")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	assert.Equal(t, []string{file}, nextBatch(t, w))
}

func TestWatcher_ChangesEndsAfterStop(t *testing.T) {
	w := newWatcher(t)
	require.NoError(t, w.Start(t.Context(), t.TempDir(), nil))

	require.NoError(t, w.Stop())

	done := make(chan struct{})
	go func() {
		for range w.Changes() {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Changes did not end after Stop")
	}
}

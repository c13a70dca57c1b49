package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/adapters/cache"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/engine/pipeline"
)

// counting returns a compute function that prefixes its input and counts its calls.
func counting(calls *atomic.Int32) pipeline.ComputeFunc {
	return func(_ context.Context, input, _ string) (*domain.TransformResult, error) {
		calls.Add(1)
		return &domain.TransformResult{Contents: "out:" + input, Loader: domain.LoaderTS}, nil
	}
}

func writeSource(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestCacheableLoad_TouchedFileIsNotRecomputed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ts")
	base := time.Now().Add(-time.Hour)
	writeSource(t, path, "a", base)

	c := cache.NewMemory()
	var calls atomic.Int32

	out, err := pipeline.CacheableLoad(t.Context(), path, c, counting(&calls))
	require.NoError(t, err)
	assert.Equal(t, "out:a", out.Contents)

	touched := base.Add(time.Minute)
	require.NoError(t, os.Chtimes(path, touched, touched))

	out, err = pipeline.CacheableLoad(t.Context(), path, c, counting(&calls))
	require.NoError(t, err)
	assert.Equal(t, "out:a", out.Contents)
	assert.Equal(t, int32(1), calls.Load())

	entry, ok := c.Get(path)
	require.True(t, ok)
	assert.Equal(t, touched.UnixNano(), entry.Mtime)
}

func TestCacheableLoad_ChangedContentIsRecomputed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ts")
	base := time.Now().Add(-time.Hour)
	writeSource(t, path, "a", base)

	c := cache.NewMemory()
	var calls atomic.Int32

	_, err := pipeline.CacheableLoad(t.Context(), path, c, counting(&calls))
	require.NoError(t, err)

	writeSource(t, path, "b", base.Add(time.Minute))

	out, err := pipeline.CacheableLoad(t.Context(), path, c, counting(&calls))
	require.NoError(t, err)
	assert.Equal(t, "out:b", out.Contents)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheableLoad_UnchangedMtimeUsesCachedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ts")
	mtime := time.Now().Add(-time.Hour)
	writeSource(t, path, "a", mtime)

	c := cache.NewMemory()
	var calls atomic.Int32

	_, err := pipeline.CacheableLoad(t.Context(), path, c, counting(&calls))
	require.NoError(t, err)

	// Same modification time, different bytes: the file is not read again.
	writeSource(t, path, "b", mtime)

	out, err := pipeline.CacheableLoad(t.Context(), path, c, counting(&calls))
	require.NoError(t, err)
	assert.Equal(t, "out:a", out.Contents)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheableLoad_ErrorsAreNotStored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ts")
	writeSource(t, path, "a", time.Now())

	c := cache.NewMemory()
	errBoom := errors.New("boom")

	_, err := pipeline.CacheableLoad(t.Context(), path, c, func(context.Context, string, string) (*domain.TransformResult, error) {
		return nil, errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, c.Len())

	var calls atomic.Int32
	out, err := pipeline.CacheableLoad(t.Context(), path, c, counting(&calls))
	require.NoError(t, err)
	assert.Equal(t, "out:a", out.Contents)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheableLoad_MissingFile(t *testing.T) {
	var calls atomic.Int32

	_, err := pipeline.CacheableLoad(t.Context(), filepath.Join(t.TempDir(), "missing.ts"), cache.NewMemory(), counting(&calls))

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPathStatFailed.Error())
	assert.Zero(t, calls.Load())
}

func TestCachedLoader_ConcurrentLoadsComputeOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ts")
	writeSource(t, path, "a", time.Now())

	loader := pipeline.NewCachedLoader(cache.NewMemory())
	var calls atomic.Int32
	release := make(chan struct{})
	compute := func(_ context.Context, input, _ string) (*domain.TransformResult, error) {
		calls.Add(1)
		<-release
		return &domain.TransformResult{Contents: input}, nil
	}

	var wg sync.WaitGroup
	results := make([]*domain.TransformResult, 8)
	for i := range results {
		wg.Go(func() {
			out, err := loader.Load(t.Context(), path, compute)
			assert.NoError(t, err)
			results[i] = out
		})
	}

	// Give every goroutine the chance to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, "a", r.Contents)
	}
	assert.Equal(t, 1, loader.Len())
}

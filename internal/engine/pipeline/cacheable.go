package pipeline

import (
	"context"
	"os"

	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the result for the contents of the file at path.
type ComputeFunc func(ctx context.Context, input, path string) (*domain.TransformResult, error)

// CacheableLoad returns the result of compute for the file at path, memoized in
// cache.
//
// The file is only read when its modification time is newer than the one
// recorded in the cache entry, and compute only runs when the contents differ
// from the recorded input. An entry whose contents did not change gets its
// modification time refreshed. Errors from compute are returned and not
// stored.
func CacheableLoad(ctx context.Context, path string, cache ports.FileCache, compute ComputeFunc) (*domain.TransformResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}
	mtime := info.ModTime().UnixNano()

	entry, ok := cache.Get(path)

	var input string
	if ok && entry.Mtime >= mtime {
		input = entry.Input
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", path)
		}
		input = string(data)
	}

	if ok && entry.Input == input {
		if entry.Mtime < mtime {
			cache.Set(path, &domain.CacheEntry{Key: path, Input: input, Output: entry.Output, Mtime: mtime})
		}
		return entry.Output, nil
	}

	output, err := compute(ctx, input, path)
	if err != nil {
		return nil, err
	}
	cache.Set(path, &domain.CacheEntry{Key: path, Input: input, Output: output, Mtime: mtime})
	return output, nil
}

// CachedLoader runs CacheableLoad with at most one load in flight per path.
type CachedLoader struct {
	cache  ports.FileCache
	flight singleflight.Group
}

// NewCachedLoader creates a CachedLoader backed by cache.
func NewCachedLoader(cache ports.FileCache) *CachedLoader {
	return &CachedLoader{cache: cache}
}

// Load is CacheableLoad with concurrent callers for the same path sharing one call.
func (l *CachedLoader) Load(ctx context.Context, path string, compute ComputeFunc) (*domain.TransformResult, error) {
	v, err, _ := l.flight.Do(path, func() (any, error) {
		return CacheableLoad(ctx, path, l.cache, compute)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.TransformResult), nil
}

// Len returns the number of cached files.
func (l *CachedLoader) Len() int {
	return l.cache.Len()
}

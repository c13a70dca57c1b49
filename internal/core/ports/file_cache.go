package ports

import "go.trai.ch/ngbuild/internal/core/domain"

// FileCache stores transform outputs per file for the lifetime of a build context.
// Implementations must be safe for concurrent use.
//
//go:generate mockgen -source=file_cache.go -destination=mocks/mock_file_cache.go -package=mocks
type FileCache interface {
	// Get returns the entry stored under key.
	Get(key string) (*domain.CacheEntry, bool)

	// Set stores entry under key, replacing any previous entry.
	Set(key string, entry *domain.CacheEntry)

	// Len returns the number of stored entries.
	Len() int
}

// FileCacheFactory creates an empty FileCache. Each build context gets its own
// cache, so entries never leak between build configurations.
type FileCacheFactory func() FileCache

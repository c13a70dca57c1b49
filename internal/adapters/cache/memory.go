// Package cache implements the in-memory file cache shared by the load
// callbacks of one build context.
package cache

import (
	"sync"

	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
)

// Memory implements ports.FileCache with a map guarded by a RWMutex.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*domain.CacheEntry
}

// NewMemory creates an empty cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*domain.CacheEntry)}
}

// NewFactory returns a ports.FileCacheFactory that hands out empty Memory
// caches.
func NewFactory() ports.FileCacheFactory {
	return func() ports.FileCache { return NewMemory() }
}

// Get returns the entry stored under key.
func (m *Memory) Get(key string) (*domain.CacheEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok
}

// Set stores entry under key.
func (m *Memory) Set(key string, entry *domain.CacheEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

package ports

import (
	"context"
	"iter"
)

// Watcher reports file changes below a directory tree.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching root recursively. Directories below root whose
	// absolute path is listed in ignore are not watched.
	Start(ctx context.Context, root string, ignore []string) error
	// Stop stops the watcher, drops pending changes and releases all resources.
	Stop() error
	// Changes yields the changed paths, coalesced over a short window.
	// The sequence ends when the watcher stops.
	Changes() iter.Seq[[]string]
}

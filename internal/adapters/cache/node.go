package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ngbuild/internal/core/ports"
)

// NodeID is the unique identifier for the file cache Graft node.
const NodeID graft.ID = "adapter.file_cache"

func init() {
	graft.Register(graft.Node[ports.FileCacheFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileCacheFactory, error) {
			return NewFactory(), nil
		},
	})
}

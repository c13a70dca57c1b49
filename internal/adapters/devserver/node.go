package devserver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ngbuild/internal/adapters/logger"
	"go.trai.ch/ngbuild/internal/core/ports"
)

// NodeID is the unique identifier for the dev server factory Graft node.
const NodeID graft.ID = "adapter.devserver"

func init() {
	graft.Register(graft.Node[ports.DevServerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.DevServerFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}

package bundler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ngbuild/internal/adapters/cache"
	"go.trai.ch/ngbuild/internal/adapters/fs"
	"go.trai.ch/ngbuild/internal/adapters/logger"
	"go.trai.ch/ngbuild/internal/adapters/sass"
	"go.trai.ch/ngbuild/internal/adapters/telemetry"
	"go.trai.ch/ngbuild/internal/core/ports"
)

// NodeID is the unique identifier for the bundler Graft node.
const NodeID graft.ID = "adapter.bundler"

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			telemetry.TracerNodeID,
			cache.NodeID,
			fs.HasherNodeID,
			sass.NodeID,
			fs.AssetResolverNodeID,
		},
		Run: func(ctx context.Context) (ports.Bundler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			caches, err := graft.Dep[ports.FileCacheFactory](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			compiler, err := graft.Dep[ports.StyleCompiler](ctx)
			if err != nil {
				return nil, err
			}
			assets, err := graft.Dep[ports.AssetResolver](ctx)
			if err != nil {
				return nil, err
			}
			return New(log, tracer, caches, hasher, compiler, assets), nil
		},
	})
}

package app

import (
	"context"
	"errors"
	"io"

	"github.com/grindlemire/graft"
	"go.trai.ch/ngbuild/internal/adapters/bundler"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ngbuild/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ngbuild/internal/adapters/devserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/ngbuild/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ngbuild/internal/adapters/sass"      //nolint:depguard // Wired in app layer
	"go.trai.ch/ngbuild/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/ngbuild/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ngbuild/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger

	closers []io.Closer
}

// Close releases the long-lived processes started by the components.
func (c *Components) Close() error {
	var errs error
	for _, cl := range c.closers {
		errs = errors.Join(errs, cl.Close())
	}
	return errs
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			bundler.NodeID,
			watcher.NodeID,
			devserver.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			sass.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			compiler, err := graft.Dep[ports.StyleCompiler](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log, closers: []io.Closer{compiler}}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	b, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	servers, err := graft.Dep[ports.DevServerFactory](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, b, w, servers, tracer), nil
}

package devserver

import (
	"context"

	"go.trai.ch/ngbuild/internal/adapters/bundler"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
)

var _ ports.DevServerFactory = (*Factory)(nil)

// Factory implements ports.DevServerFactory.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// New compiles the live reload client when needed and creates a Server.
func (f *Factory) New(ctx context.Context, project *domain.Project, immutable []string) (ports.DevServer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var client string
	if project.Serve.LiveReload {
		target, _ := bundler.ParseTarget(project.EsbuildTarget)
		code, err := BundleClient(target)
		if err != nil {
			return nil, err
		}
		client = code
	}
	return New(f.logger, project, client, immutable)
}

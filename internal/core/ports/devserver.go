package ports

import (
	"context"

	"go.trai.ch/ngbuild/internal/core/domain"
)

// DevServer serves build output and notifies browsers about rebuilds.
//
//go:generate mockgen -source=devserver.go -destination=mocks/mock_devserver.go -package=mocks
type DevServer interface {
	// Start listens until ctx is cancelled or Close is called.
	Start(ctx context.Context) error
	// OnRebuild replaces the immutable output set, reloads index.html and
	// tells every connected client to reload.
	OnRebuild(immutable []string) error
	// URL returns the address browsers should open.
	URL() string
	// Close shuts the server down.
	Close() error
}

// DevServerFactory creates a dev server for a project once its first build succeeded.
type DevServerFactory interface {
	New(ctx context.Context, project *domain.Project, immutable []string) (DevServer, error)
}

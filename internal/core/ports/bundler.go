package ports

import (
	"context"
	"time"

	"go.trai.ch/ngbuild/internal/core/domain"
)

// BuildOptions tunes a single bundler invocation.
type BuildOptions struct {
	// Store persists transform results across runs. Nil disables it.
	Store TransformStore
	// Watch prefixes build state messages with "Rebuild" after the first pass.
	Watch bool
}

// BuildOutcome summarises a finished build pass.
type BuildOutcome struct {
	// Errors and Warnings are formatted bundler messages.
	Errors   []string
	Warnings []string
	// Outputs are the absolute paths written by the pass.
	Outputs []string
	// Immutable are the outputs whose names carry a content hash.
	Immutable []string
	// Files lists the written bundles, relative to the output directory.
	Files    []OutputFile
	Duration time.Duration
}

// OutputFile is one bundle written by a pass.
type OutputFile struct {
	Name  string
	Bytes int
}

// Failed reports whether the pass produced errors.
func (o *BuildOutcome) Failed() bool {
	return len(o.Errors) > 0
}

// Bundler runs builds for a project.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Build runs one build pass.
	Build(ctx context.Context, project *domain.Project, opts BuildOptions) (*BuildOutcome, error)
	// NewContext prepares an incremental build whose caches survive rebuilds.
	NewContext(ctx context.Context, project *domain.Project, opts BuildOptions) (BuildContext, error)
}

// BuildContext is an incremental build.
type BuildContext interface {
	// Rebuild runs one build pass reusing the state of earlier ones.
	Rebuild(ctx context.Context) (*BuildOutcome, error)
	// Dispose releases the context. It must be called exactly once.
	Dispose()
}

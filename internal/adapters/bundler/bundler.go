// Package bundler builds Angular applications with esbuild.
//
// A build is configured by a session: the esbuild options derived from the
// project plus the plugins that generate the virtual entry points, run the
// source transform pipeline, inline component resources, bundle web workers
// and write index.html and assets once esbuild is done.
package bundler

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/build"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/ngbuild/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

// Bundler implements ports.Bundler on the esbuild Go API.
type Bundler struct {
	logger   ports.Logger
	tracer   ports.Tracer
	caches   ports.FileCacheFactory
	hasher   ports.Hasher
	compiler ports.StyleCompiler
	assets   ports.AssetResolver
}

// New creates a Bundler. Every build context it creates gets a fresh cache
// from caches.
func New(
	logger ports.Logger,
	tracer ports.Tracer,
	caches ports.FileCacheFactory,
	hasher ports.Hasher,
	compiler ports.StyleCompiler,
	assets ports.AssetResolver,
) *Bundler {
	return &Bundler{
		logger:   logger,
		tracer:   tracer,
		caches:   caches,
		hasher:   hasher,
		compiler: compiler,
		assets:   assets,
	}
}

// Build runs one build pass.
func (b *Bundler) Build(ctx context.Context, project *domain.Project, opts ports.BuildOptions) (*ports.BuildOutcome, error) {
	bctx, err := b.NewContext(ctx, project, opts)
	if err != nil {
		return nil, err
	}
	defer bctx.Dispose()
	return bctx.Rebuild(ctx)
}

// NewContext prepares an incremental build. The output directory is removed
// once, when the context is created.
func (b *Bundler) NewContext(_ context.Context, project *domain.Project, opts ports.BuildOptions) (ports.BuildContext, error) {
	s, err := b.newSession(project, opts)
	if err != nil {
		return nil, err
	}

	esb, ctxErr := api.Context(s.options())
	if ctxErr != nil {
		msgs := api.FormatMessages(ctxErr.Errors, api.FormatMessagesOptions{Kind: api.ErrorMessage})
		return nil, zerr.With(domain.ErrContextCreateFailed, "errors", strings.TrimSpace(strings.Join(msgs, "")))
	}
	return &buildContext{session: s, esbuild: esb}, nil
}

func (b *Bundler) newSession(project *domain.Project, opts ports.BuildOptions) (*session, error) {
	target, ok := ParseTarget(project.EsbuildTarget)
	if !ok {
		return nil, zerr.With(domain.ErrInvalidTarget, "target", project.EsbuildTarget)
	}

	workerSuffix := ""
	if project.WorkersEnabled() {
		workerSuffix = domain.WorkerSuffix
	}

	fileCache := b.caches()
	s := &session{
		Bundler: b,
		project: project,
		opts:    opts,
		target:  target,
		pipeline: pipeline.New(fileCache, opts.Store, b.hasher, b.tracer, pipeline.Options{
			ResourceSuffix:   domain.ResourceSuffix,
			WorkerSuffix:     workerSuffix,
			Splitting:        true,
			FileReplacements: project.Build.FileReplacements,
			Fingerprint:      build.Version,
		}),
		templates: pipeline.NewCachedLoader(fileCache),
		ctx:       context.Background(),
	}
	s.styles = &stylePipeline{
		compiler:     b.compiler,
		tracer:       b.tracer,
		target:       target,
		root:         project.Root,
		includePaths: append(slices.Clone(project.Build.IncludePaths), project.Root),
	}
	return s, nil
}

// session is the state shared by the plugins of one build context.
type session struct {
	*Bundler

	project   *domain.Project
	opts      ports.BuildOptions
	target    api.Target
	pipeline  *pipeline.Pipeline
	templates *pipeline.CachedLoader
	styles    *stylePipeline

	mu  sync.Mutex
	ctx context.Context
}

// passContext returns the context of the pass in progress. esbuild callbacks
// carry none of their own.
func (s *session) passContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *session) setContext(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
}

// buildContext implements ports.BuildContext.
type buildContext struct {
	*session
	esbuild api.BuildContext

	passMu sync.Mutex
}

// Rebuild runs one pass. Passes never overlap. Cancelling ctx cancels the pass.
func (c *buildContext) Rebuild(ctx context.Context) (*ports.BuildOutcome, error) {
	c.passMu.Lock()
	defer c.passMu.Unlock()

	ctx, span := c.tracer.Start(ctx, "build", ports.WithAttribute("project", c.project.Name))
	defer span.End()

	c.setContext(ctx)
	defer c.setContext(context.Background())

	stop := context.AfterFunc(ctx, c.esbuild.Cancel)
	defer stop()

	start := time.Now()
	result := c.esbuild.Rebuild()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := c.outcome(result, time.Since(start))
	span.SetAttribute("errors", len(outcome.Errors))
	span.SetAttribute("warnings", len(outcome.Warnings))
	if outcome.Failed() {
		span.RecordError(zerr.With(domain.ErrBuildFailed, "errors", len(outcome.Errors)))
	}
	return outcome, nil
}

// Dispose releases the esbuild context.
func (c *buildContext) Dispose() {
	c.esbuild.Dispose()
}

func (s *session) outcome(result api.BuildResult, took time.Duration) *ports.BuildOutcome {
	outcome := &ports.BuildOutcome{
		Errors:   formatMessages(result.Errors, api.ErrorMessage),
		Warnings: formatMessages(result.Warnings, api.WarningMessage),
		Duration: took,
	}

	meta, err := parseMetafile(result.Metafile)
	if err != nil {
		return outcome
	}
	for _, out := range meta.outputPaths() {
		abs := s.abs(out)
		outcome.Outputs = append(outcome.Outputs, abs)
		if strings.HasSuffix(out, ".map") {
			continue
		}
		name, err := filepath.Rel(s.project.OutputDir(), abs)
		if err != nil {
			name = out
		}
		outcome.Files = append(outcome.Files, ports.OutputFile{
			Name:  filepath.ToSlash(name),
			Bytes: meta.Outputs[out].Bytes,
		})
	}
	// Every output name carries its content hash.
	outcome.Immutable = slices.Clone(outcome.Outputs)
	return outcome
}

// abs resolves a path reported by esbuild relative to the project root.
func (s *session) abs(path string) string {
	return filepath.Join(s.project.Root, filepath.FromSlash(path))
}

func formatMessages(msgs []api.Message, kind api.MessageKind) []string {
	if len(msgs) == 0 {
		return nil
	}
	formatted := api.FormatMessages(msgs, api.FormatMessagesOptions{Kind: kind})
	for i, m := range formatted {
		formatted[i] = strings.TrimRight(m, "\n")
	}
	return formatted
}

// Package app implements the application layer for ngbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/ngbuild/internal/adapters/cas" //nolint:depguard // Wired in app layer
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/ngbuild/internal/ui/summary"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	bundler      ports.Bundler
	watcher      ports.Watcher
	servers      ports.DevServerFactory
	tracer       ports.Tracer
	workDir      string
	out          io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	bundler ports.Bundler,
	watcher ports.Watcher,
	servers ports.DevServerFactory,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		bundler:      bundler,
		watcher:      watcher,
		servers:      servers,
		tracer:       tracer,
		out:          os.Stdout,
	}
}

// WithWorkDir sets the directory the project file is searched from.
// By default the process working directory is used.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithOutput sets where the summary of a build is printed.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Configuration string
	NoCache       bool
	JSON          bool
	Debug         bool
}

// ServeOptions configuration for the Serve method. Zero values keep the
// settings of the project file.
type ServeOptions struct {
	BuildOptions

	Host string
	Port int
	Open bool
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Configuration string
	Cache         bool
	Output        bool
}

// jsonLogger and debugLogger are implemented by the logger adapter.
type jsonLogger interface{ SetJSON(enable bool) }

type debugLogger interface{ EnableDebugLog(path string) }

// exporter is implemented by tracers that can ship spans to a collector.
type exporter interface {
	Export(ctx context.Context, endpoint string) error
}

// Build runs a single build of the project.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	project, err := a.setup(ctx, opts)
	if err != nil {
		return err
	}
	defer a.shutdownTracer(ctx, project)

	outcome, err := a.bundler.Build(ctx, project, buildOptions(project, opts, false))
	if err != nil {
		return err
	}
	if outcome.Failed() {
		// The bundler already logged every message.
		return domain.ErrBuildFailed
	}
	if table := summary.Render(outcome.Files); table != "" && !opts.JSON {
		_, _ = fmt.Fprint(a.out, "\n"+table)
	}
	return nil
}

// Serve builds the project, serves the output and rebuilds on every change
// until ctx is cancelled. The dev server starts with the first successful
// build.
//
//nolint:cyclop // orchestration function
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	project, err := a.setup(ctx, opts.BuildOptions)
	if err != nil {
		return err
	}
	defer a.shutdownTracer(ctx, project)
	applyServeOverrides(project, opts)

	bctx, err := a.bundler.NewContext(ctx, project, buildOptions(project, opts.BuildOptions, true))
	if err != nil {
		return err
	}
	defer bctx.Dispose()

	outcome, err := bctx.Rebuild(ctx)
	if err != nil {
		return canceled(ctx, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	var server ports.DevServer
	publish := func(outcome *ports.BuildOutcome) error {
		if outcome.Failed() {
			return nil
		}
		if server != nil {
			return server.OnRebuild(outcome.Immutable)
		}
		s, err := a.servers.New(gctx, project, outcome.Immutable)
		if err != nil {
			return err
		}
		server = s
		g.Go(func() error {
			return s.Start(gctx)
		})
		return nil
	}
	if err := publish(outcome); err != nil {
		return err
	}

	if err := a.watcher.Start(gctx, project.Root, watchIgnore(project)); err != nil {
		if server != nil {
			_ = server.Close()
		}
		_ = g.Wait()
		return err
	}

	g.Go(func() error {
		<-gctx.Done()
		return a.watcher.Stop()
	})

	g.Go(func() error {
		for paths := range a.watcher.Changes() {
			a.logger.Debug(fmt.Sprintf("%d file(s) changed", len(paths)))
			outcome, err := bctx.Rebuild(gctx)
			if err != nil {
				return canceled(gctx, err)
			}
			if err := publish(outcome); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}

// Clean removes the transform cache and the output directory.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	dir, err := a.dir()
	if err != nil {
		return err
	}
	project, err := a.configLoader.Load(dir, opts.Configuration)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if opts.Cache {
		remove(filepath.Join(project.Root, domain.DefaultCachePath()), "transform cache")
	}
	if opts.Output {
		out := filepath.Clean(project.OutputDir())
		if out == filepath.Clean(project.Root) {
			return errors.Join(errs, zerr.With(domain.ErrOutputCleanFailed, "path", out))
		}
		remove(out, "output directory")
	}
	return errs
}

// setup loads the project and configures logging and telemetry for it.
func (a *App) setup(ctx context.Context, opts BuildOptions) (*domain.Project, error) {
	if l, ok := a.logger.(jsonLogger); ok {
		l.SetJSON(opts.JSON)
	}

	dir, err := a.dir()
	if err != nil {
		return nil, err
	}
	project, err := a.configLoader.Load(dir, opts.Configuration)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if l, ok := a.logger.(debugLogger); ok && opts.Debug {
		l.EnableDebugLog(filepath.Join(project.Root, domain.DefaultDebugLogPath()))
	}

	if project.Telemetry.Enabled {
		if e, ok := a.tracer.(exporter); ok {
			if err := e.Export(ctx, project.Telemetry.Endpoint); err != nil {
				// Builds work without traces.
				a.logger.Warn(err.Error())
			}
		}
	}
	return project, nil
}

func (a *App) shutdownTracer(ctx context.Context, project *domain.Project) {
	if !project.Telemetry.Enabled {
		return
	}
	if err := a.tracer.Shutdown(context.WithoutCancel(ctx)); err != nil {
		a.logger.Debug("failed to flush traces: " + err.Error())
	}
}

func buildOptions(project *domain.Project, opts BuildOptions, watch bool) ports.BuildOptions {
	bopts := ports.BuildOptions{Watch: watch}
	if !opts.NoCache {
		bopts.Store = cas.NewStore(filepath.Join(project.Root, domain.DefaultTransformStorePath()))
	}
	return bopts
}

func (a *App) dir() (string, error) {
	if a.workDir != "" {
		return filepath.Abs(a.workDir)
	}
	return os.Getwd()
}

func applyServeOverrides(project *domain.Project, opts ServeOptions) {
	if opts.Host != "" {
		project.Serve.Host = opts.Host
	}
	if opts.Port != 0 {
		project.Serve.Port = opts.Port
	}
	if opts.Open {
		project.Serve.Open = true
	}
}

// watchIgnore lists the directories whose changes never trigger a rebuild.
func watchIgnore(project *domain.Project) []string {
	return []string{
		project.OutputDir(),
		filepath.Join(project.Root, domain.NgbuildDirName),
		filepath.Join(project.Root, "node_modules"),
		filepath.Join(project.Root, ".git"),
	}
}

// canceled turns errors caused by the cancellation of ctx into a clean exit.
func canceled(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

package bundler

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// workerPlugin bundles web workers referenced through the worker suffix as
// their own outputs. It does nothing unless a worker tsconfig is configured.
func (s *session) workerPlugin() api.Plugin {
	return api.Plugin{
		Name: domain.NamespaceWorker,
		Setup: func(build api.PluginBuild) {
			if !s.project.WorkersEnabled() {
				return
			}
			build.OnResolve(api.OnResolveOptions{Filter: regexp.QuoteMeta(domain.WorkerSuffix) + "$"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return resolveWorker(build, args)
				})
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: domain.NamespaceWorker}, s.load)
		},
	}
}

func resolveWorker(build api.PluginBuild, args api.OnResolveArgs) (api.OnResolveResult, error) {
	resolved := build.Resolve(strings.TrimSuffix(args.Path, domain.WorkerSuffix), api.ResolveOptions{
		Importer:   args.Importer,
		ResolveDir: args.ResolveDir,
		Kind:       args.Kind,
	})
	if len(resolved.Errors) > 0 {
		return api.OnResolveResult{Errors: resolved.Errors}, nil
	}
	return api.OnResolveResult{
		// esbuild names the emitted file after this path, so a .ts worker is
		// labelled .js. The real path travels in PluginData.
		Path:       WorkerOutputPath(resolved.Path),
		Namespace:  domain.NamespaceWorker,
		PluginData: resolved.Path,
	}, nil
}

// WorkerOutputPath relabels a TypeScript worker entry point as JavaScript.
func WorkerOutputPath(path string) string {
	if trimmed, ok := strings.CutSuffix(path, ".ts"); ok {
		return trimmed + ".js"
	}
	return path
}

// loadWorker bundles the worker at path with a nested build and hands the
// result to the file loader, which emits it and exports its URL.
func (s *session) loadWorker(path string) (api.OnLoadResult, error) {
	_, span := s.tracer.Start(s.passContext(), "worker.bundle", ports.WithAttribute("path", path))
	defer span.End()

	result := api.Build(api.BuildOptions{
		EntryPoints:   []string{path},
		Bundle:        true,
		Target:        s.target,
		Metafile:      true,
		Tsconfig:      s.project.Abs(s.project.Build.WebWorkerTsConfig),
		AbsWorkingDir: s.project.Root,
		Write:         false,
		LogLevel:      api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		span.RecordError(zerr.With(domain.ErrSubBuildFailed, "path", path))
		return api.OnLoadResult{Errors: result.Errors, Warnings: result.Warnings}, nil
	}
	if len(result.OutputFiles) != 1 {
		err := zerr.With(zerr.With(domain.ErrUnexpectedOutputCount, "path", path), "outputs", len(result.OutputFiles))
		span.RecordError(err)
		return api.OnLoadResult{}, err
	}

	var watch []string
	if meta, err := parseMetafile(result.Metafile); err == nil {
		for _, in := range meta.inputPaths() {
			watch = append(watch, filepath.Join(s.project.Root, filepath.FromSlash(in)))
		}
	}

	contents := string(result.OutputFiles[0].Contents)
	return api.OnLoadResult{
		Contents:   &contents,
		Loader:     api.LoaderFile,
		Warnings:   result.Warnings,
		WatchFiles: watch,
	}, nil
}

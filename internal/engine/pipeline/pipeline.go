// Package pipeline decides which source transforms apply to a file, runs them
// in a single pass and memoizes the result.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/ngbuild/internal/engine/transform"
)

// Options configures which transforms a Pipeline runs.
type Options struct {
	// ResourceSuffix is appended to inlined component resources.
	ResourceSuffix string
	// WorkerSuffix is appended to worker entry points. Empty disables the
	// worker transform.
	WorkerSuffix string
	// Splitting enables the dynamic import interop transform.
	Splitting bool
	// FileReplacements maps absolute paths to the absolute paths loaded instead.
	FileReplacements map[string]string
	// Fingerprint identifies the tool version in persistent store keys.
	Fingerprint string
}

// Result is the contents handed to the bundler for one source file.
type Result struct {
	Contents string
	Loader   domain.Loader
	Warnings []domain.Diagnostic
	// WatchFiles are extra files whose changes invalidate the result.
	WatchFiles []string
}

// Pipeline transforms TypeScript sources.
type Pipeline struct {
	loader       *CachedLoader
	store        ports.TransformStore
	hasher       ports.Hasher
	tracer       ports.Tracer
	transforms   []transform.Transform
	replacements map[string]string
	fingerprint  string
}

// New creates a Pipeline. store may be nil to disable the persistent store.
func New(cache ports.FileCache, store ports.TransformStore, hasher ports.Hasher, tracer ports.Tracer, opts Options) *Pipeline {
	transforms := []transform.Transform{
		transform.AngularDI{},
		transform.InlineResources{Suffix: opts.ResourceSuffix},
		transform.EagerImports{},
	}
	if opts.Splitting {
		transforms = append(transforms, transform.DynamicImportInterop{})
	}
	if opts.WorkerSuffix != "" {
		transforms = append(transforms, transform.WorkerURL{Suffix: opts.WorkerSuffix})
	}

	names := make([]string, len(transforms))
	for i, t := range transforms {
		names[i] = t.Name()
	}

	return &Pipeline{
		loader:       NewCachedLoader(cache),
		store:        store,
		hasher:       hasher,
		tracer:       tracer,
		transforms:   transforms,
		replacements: opts.FileReplacements,
		fingerprint: strings.Join([]string{
			opts.Fingerprint, strings.Join(names, ","), opts.ResourceSuffix, opts.WorkerSuffix,
		}, "|"),
	}
}

// Transforms returns the names of the enabled transforms in the order they run.
func (p *Pipeline) Transforms() []string {
	names := make([]string, len(p.transforms))
	for i, t := range p.transforms {
		names[i] = t.Name()
	}
	return names
}

// Load returns the transformed contents of the source file at path.
// A registered file replacement is loaded in place of path and reported as a
// watch file.
func (p *Pipeline) Load(ctx context.Context, path string) (*Result, error) {
	var watch []string
	if replacement, ok := p.replacements[path]; ok {
		path = replacement
		watch = []string{replacement}
	}

	out, err := p.loader.Load(ctx, path, p.compute)
	if err != nil {
		return nil, err
	}

	return &Result{
		Contents:   out.Contents,
		Loader:     out.Loader,
		Warnings:   out.Warnings,
		WatchFiles: watch,
	}, nil
}

func (p *Pipeline) compute(ctx context.Context, input, path string) (*domain.TransformResult, error) {
	src := []byte(input)
	matching := transform.Matching(src, p.transforms)
	if len(matching) == 0 {
		return &domain.TransformResult{Contents: input, Loader: LoaderFor(path)}, nil
	}

	var key string
	if p.store != nil {
		key = p.hasher.ComputeKey(p.fingerprint, path, input)
		// A store that cannot be read is treated as a miss.
		if cached, err := p.store.Get(key); err == nil && cached != nil {
			return cached, nil
		}
	}

	ctx, span := p.tracer.Start(ctx, "transform", ports.WithAttribute("path", path))
	defer span.End()

	out, err := transform.Apply(ctx, path, src, matching)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("transforms", strings.Join(out.Applied, ","))

	result := &domain.TransformResult{Contents: out.Code, Loader: LoaderFor(path), Warnings: out.Warnings}
	if p.store != nil {
		if err := p.store.Put(key, result); err != nil {
			span.RecordError(err)
		}
	}
	return result, nil
}

// LoaderFor returns the loader for a TypeScript source path.
func LoaderFor(path string) domain.Loader {
	if strings.EqualFold(filepath.Ext(path), ".tsx") {
		return domain.LoaderTSX
	}
	return domain.LoaderTS
}

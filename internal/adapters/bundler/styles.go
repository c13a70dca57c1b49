package bundler

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/adapters/sass"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// relativeImport matches Sass imports of relative paths.
var relativeImport = regexp.MustCompile(`@(import|use) (['"])(\.[^'"]+)['"]`)

// inlineLoaders inline the files referenced by url() in stylesheets.
var inlineLoaders = map[string]api.Loader{
	".png":   api.LoaderDataURL,
	".jpg":   api.LoaderDataURL,
	".jpeg":  api.LoaderDataURL,
	".gif":   api.LoaderDataURL,
	".svg":   api.LoaderDataURL,
	".webp":  api.LoaderDataURL,
	".avif":  api.LoaderDataURL,
	".woff":  api.LoaderDataURL,
	".woff2": api.LoaderDataURL,
	".ttf":   api.LoaderDataURL,
	".otf":   api.LoaderDataURL,
	".eot":   api.LoaderDataURL,
}

// rootRelativeExternal keeps url("/assets/...") references as they are. The
// filter runs on the path as written, so files that resolve to absolute paths
// on disk are still inlined.
var rootRelativeExternal = api.Plugin{
	Name: "root-relative-external",
	Setup: func(build api.PluginBuild) {
		build.OnResolve(api.OnResolveOptions{Filter: `^/`}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
			return api.OnResolveResult{Path: args.Path, External: true}, nil
		})
	},
}

// stylePipeline turns a stylesheet into self-contained CSS.
type stylePipeline struct {
	compiler     ports.StyleCompiler
	tracer       ports.Tracer
	target       api.Target
	root         string
	includePaths []string
}

// Compile reads, compiles and post-processes the stylesheet at path. It also
// returns the files the result was built from.
func (p *stylePipeline) Compile(ctx context.Context, path string) (string, []string, error) {
	//nolint:gosec // Paths come from the project's own imports.
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", path)
	}

	ctx, span := p.tracer.Start(ctx, "style.compile", ports.WithAttribute("path", path))
	defer span.End()

	syntax := sass.SyntaxFor(path)
	source := string(data)
	if syntax != ports.SyntaxCSS {
		source = FixRelativeImports(source, filepath.Ext(path))
	}

	css, err := p.compiler.Compile(ctx, ports.StyleRequest{
		Source:       source,
		Path:         path,
		Syntax:       syntax,
		IncludePaths: p.includePaths,
	})
	if err != nil {
		span.RecordError(err)
		return "", nil, err
	}

	watch := []string{path}
	if !needsPostProcess(css) {
		return css, watch, nil
	}

	css, inputs, err := p.inline(css, path)
	if err != nil {
		span.RecordError(err)
		return "", nil, err
	}
	return css, append(watch, inputs...), nil
}

// FixRelativeImports appends ext to relative imports that name no stylesheet
// extension, so "@import './theme.component'" loads theme.component.scss.
func FixRelativeImports(source, ext string) string {
	if !strings.Contains(source, "@import") && !strings.Contains(source, "@use") {
		return source
	}
	return relativeImport.ReplaceAllStringFunc(source, func(m string) string {
		sub := relativeImport.FindStringSubmatch(m)
		keyword, quote, target := sub[1], sub[2], sub[3]
		if domain.IsStylePath(target) {
			return m
		}
		return "@" + keyword + " " + quote + target + ext + quote
	})
}

func needsPostProcess(css string) bool {
	return strings.Contains(css, "@import") || strings.Contains(css, "url(")
}

// inline bundles CSS imports and inlines url() references with a nested
// esbuild build.
func (p *stylePipeline) inline(css, path string) (string, []string, error) {
	result := api.Build(api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   css,
			ResolveDir: filepath.Dir(path),
			Sourcefile: path,
			Loader:     api.LoaderCSS,
		},
		Bundle:        true,
		Write:         false,
		Metafile:      true,
		Target:        p.target,
		AbsWorkingDir: p.root,
		LogLevel:      api.LogLevelSilent,
		Loader:        inlineLoaders,
		External:      []string{"http://*", "https://*", "data:*"},
		Plugins:       []api.Plugin{rootRelativeExternal},
	})
	if len(result.Errors) > 0 {
		msgs := formatMessages(result.Errors, api.ErrorMessage)
		err := zerr.With(domain.ErrStyleCompileFailed, "path", path)
		return "", nil, zerr.With(err, "errors", strings.Join(msgs, "\n"))
	}
	if len(result.OutputFiles) != 1 {
		err := zerr.With(domain.ErrUnexpectedOutputCount, "path", path)
		return "", nil, zerr.With(err, "outputs", len(result.OutputFiles))
	}

	var inputs []string
	if meta, err := parseMetafile(result.Metafile); err == nil {
		for _, in := range meta.inputPaths() {
			abs := filepath.FromSlash(in)
			if !filepath.IsAbs(abs) {
				abs = filepath.Join(p.root, abs)
			}
			if in == "<stdin>" || abs == path {
				continue
			}
			inputs = append(inputs, abs)
		}
	}
	return string(result.OutputFiles[0].Contents), inputs, nil
}

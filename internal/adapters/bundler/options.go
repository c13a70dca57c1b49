package bundler

import (
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/core/domain"
)

// Virtual entry points generated by the concatenation plugins.
const (
	PolyfillsEntry = "polyfills.js"
	ScriptsEntry   = "scripts.js"
	StylesEntry    = "styles.js"
)

// options returns the esbuild options for the session's project.
func (s *session) options() api.BuildOptions {
	p := s.project
	return api.BuildOptions{
		EntryPoints:   s.entryPoints(),
		EntryNames:    "[name].[hash]",
		Bundle:        true,
		Splitting:     true,
		Format:        api.FormatESModule,
		Metafile:      true,
		Sourcemap:     api.SourceMapLinked,
		Outdir:        p.OutputDir(),
		AbsWorkingDir: p.Root,
		Target:        s.target,
		Tsconfig:      p.Abs(p.Build.TsConfig),
		// Zone.js cannot patch native async functions, and class fields are
		// downleveled to match what Angular expects.
		Supported: map[string]bool{
			"async-await":        false,
			"async-generator":    false,
			"for-await":          false,
			"class-field":        false,
			"class-static-field": false,
		},
		Write:    true,
		LogLevel: api.LogLevelSilent,
		Plugins:  s.plugins(),
	}
}

// entryPoints lists the virtual entry points that have content, followed by main.
func (s *session) entryPoints() []string {
	b := s.project.Build
	var entries []string
	if len(b.Polyfills) > 0 || !b.AOT {
		entries = append(entries, PolyfillsEntry)
	}
	if len(b.Scripts) > 0 {
		entries = append(entries, ScriptsEntry)
	}
	if len(b.Styles) > 0 {
		entries = append(entries, StylesEntry)
	}
	return append(entries, b.Main)
}

// htmlEntryPoints returns the entry points as the metafile names them, in the
// order their tags appear in index.html.
func (s *session) htmlEntryPoints() []string {
	var names []string
	for _, e := range s.entryPoints() {
		switch e {
		case PolyfillsEntry:
			names = append(names, domain.NamespacePolyfills+":"+e)
		case ScriptsEntry:
			names = append(names, domain.NamespaceGlobalScript+":"+e)
		case StylesEntry:
			names = append(names, domain.NamespaceGlobalStyle+":"+e)
		default:
			rel, err := filepath.Rel(s.project.Root, s.project.Abs(e))
			if err != nil {
				rel = e
			}
			names = append(names, filepath.ToSlash(rel))
		}
	}
	return names
}

func (s *session) plugins() []api.Plugin {
	state := s.buildStatePlugins()
	return []api.Plugin{
		state.start,
		s.deleteOutputPlugin(),
		s.globalStylesPlugin(),
		s.globalScriptsPlugin(),
		s.polyfillsPlugin(),
		s.transformPlugin(),
		s.componentResourcesPlugin(),
		s.workerPlugin(),
		s.indexHTMLPlugin(),
		s.assetsPlugin(),
		state.end,
	}
}

package bundler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/core/domain"
)

// angularCompiler is imported first by the polyfills of JIT builds.
const angularCompiler = "@angular/compiler"

func (s *session) globalStylesPlugin() api.Plugin {
	return api.Plugin{
		Name: domain.NamespaceGlobalStyle,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: exactly(StylesEntry)}, virtualEntry(domain.NamespaceGlobalStyle))
			// Stylesheets imported by the virtual module stay in its namespace.
			build.OnResolve(api.OnResolveOptions{Filter: "^" + regexp.QuoteMeta(domain.GlobalStylePrefix)},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					rel := strings.TrimPrefix(args.Path, domain.GlobalStylePrefix)
					return api.OnResolveResult{
						Path:      domain.GlobalStylePrefix + s.project.Abs(rel),
						Namespace: domain.NamespaceGlobalStyle,
					}, nil
				})
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: domain.NamespaceGlobalStyle}, s.load)
		},
	}
}

func (s *session) globalScriptsPlugin() api.Plugin {
	return api.Plugin{
		Name: domain.NamespaceGlobalScript,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: exactly(ScriptsEntry)}, virtualEntry(domain.NamespaceGlobalScript))
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: domain.NamespaceGlobalScript}, s.load)
		},
	}
}

func (s *session) polyfillsPlugin() api.Plugin {
	return api.Plugin{
		Name: domain.NamespacePolyfills,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: exactly(PolyfillsEntry)}, virtualEntry(domain.NamespacePolyfills))
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: domain.NamespacePolyfills}, s.load)
		},
	}
}

// loadConcat generates the virtual module that imports every configured file
// of a global list in declared order.
func (s *session) loadConcat(namespace string) (api.OnLoadResult, error) {
	b := s.project.Build
	result := api.OnLoadResult{ResolveDir: s.project.Root}

	var contents string
	switch namespace {
	case domain.NamespaceGlobalScript:
		contents = ScriptsModule(b.Scripts)
		result.Loader = api.LoaderJS
		result.WatchFiles = s.absAll(b.Scripts)
	case domain.NamespaceGlobalStyle:
		contents = StylesModule(b.Styles)
		result.Loader = api.LoaderJS
		result.WatchFiles = s.absAll(b.Styles)
	case domain.NamespacePolyfills:
		contents = PolyfillsModule(b.Polyfills, b.AOT)
		result.Loader = api.LoaderTS
		for _, p := range b.Polyfills {
			if strings.HasSuffix(p, ".ts") {
				result.WatchFiles = append(result.WatchFiles, s.project.Abs(p))
			}
		}
	}
	result.Contents = &contents
	return result, nil
}

// ScriptsModule imports each global script.
func ScriptsModule(scripts []string) string {
	return importAll(scripts, domain.RelativeImport)
}

// StylesModule imports each global stylesheet through the global styles prefix.
func StylesModule(styles []string) string {
	return importAll(styles, func(p string) string {
		return domain.GlobalStylePrefix + domain.RelativeImport(p)
	})
}

// PolyfillsModule imports each polyfill. Project files are written with a
// leading "./"; package names are kept. JIT builds import the Angular
// compiler first.
func PolyfillsModule(polyfills []string, aot bool) string {
	specs := make([]string, 0, len(polyfills)+1)
	if !aot {
		specs = append(specs, angularCompiler)
	}
	specs = append(specs, polyfills...)
	return importAll(specs, func(p string) string {
		if strings.HasSuffix(p, ".ts") {
			return domain.RelativeImport(p)
		}
		return p
	})
}

func importAll(paths []string, spec func(string) string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString("import ")
		b.WriteString(strconv.Quote(spec(p)))
		b.WriteString(";\n")
	}
	return b.String()
}

func (s *session) absAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = s.project.Abs(p)
	}
	return out
}

func virtualEntry(namespace string) func(api.OnResolveArgs) (api.OnResolveResult, error) {
	return func(args api.OnResolveArgs) (api.OnResolveResult, error) {
		return api.OnResolveResult{Path: args.Path, Namespace: namespace}, nil
	}
}

func exactly(name string) string {
	return "^" + regexp.QuoteMeta(name) + "$"
}

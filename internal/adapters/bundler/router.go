package bundler

import (
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// load is the single OnLoad callback of every plugin that owns modules. It
// classifies the request and dispatches on the module kind.
func (s *session) load(args api.OnLoadArgs) (api.OnLoadResult, error) {
	ref := domain.ClassifyModule(args.Namespace, args.Path, args.Suffix)

	switch ref.Kind {
	case domain.ModuleRealFile:
		return s.loadSource(ref.Path)
	case domain.ModuleSyntheticConcat:
		return s.loadConcat(ref.Namespace)
	case domain.ModuleAnnotatedResource:
		if ref.Resource == domain.ResourceTemplate {
			return s.loadTemplate(ref.Path)
		}
		return s.loadComponentStyle(ref.Path)
	case domain.ModuleGlobalStyle:
		return s.loadGlobalStyle(ref.Path)
	case domain.ModuleWorkerBundle:
		real, ok := args.PluginData.(string)
		if !ok {
			return api.OnLoadResult{}, zerr.With(domain.ErrResolveFailed, "path", args.Path)
		}
		return s.loadWorker(real)
	default:
		if args.Namespace != domain.NamespaceFile {
			return api.OnLoadResult{}, zerr.With(zerr.With(domain.ErrUnknownModule, "namespace", args.Namespace), "path", args.Path)
		}
		// Not ours; esbuild loads it.
		return api.OnLoadResult{}, nil
	}
}

func (s *session) loadSource(path string) (api.OnLoadResult, error) {
	res, err := s.pipeline.Load(s.passContext(), path)
	if err != nil {
		return api.OnLoadResult{Errors: []api.Message{messageFor(err, path)}}, nil
	}
	return api.OnLoadResult{
		Contents:   &res.Contents,
		Loader:     esbuildLoader(res.Loader),
		ResolveDir: filepath.Dir(path),
		Warnings:   diagnosticMessages(res.Warnings),
		WatchFiles: res.WatchFiles,
	}, nil
}

func esbuildLoader(l domain.Loader) api.Loader {
	switch l {
	case domain.LoaderTSX:
		return api.LoaderTSX
	case domain.LoaderJS:
		return api.LoaderJS
	case domain.LoaderCSS:
		return api.LoaderCSS
	case domain.LoaderText:
		return api.LoaderText
	case domain.LoaderFile:
		return api.LoaderFile
	default:
		return api.LoaderTS
	}
}

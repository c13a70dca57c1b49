package bundler

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/core/domain"
)

func (s *session) transformPlugin() api.Plugin {
	return api.Plugin{
		Name: "angular-transforms",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.tsx?$`, Namespace: domain.NamespaceFile}, s.load)
		},
	}
}

func (s *session) componentResourcesPlugin() api.Plugin {
	return api.Plugin{
		Name: "angular-component-resources",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.(html|css|scss|sass)$`, Namespace: domain.NamespaceFile}, s.load)
		},
	}
}

// loadTemplate exports the template file as a string.
func (s *session) loadTemplate(path string) (api.OnLoadResult, error) {
	res, err := s.templates.Load(s.passContext(), path, func(_ context.Context, input, _ string) (*domain.TransformResult, error) {
		return &domain.TransformResult{Contents: input, Loader: domain.LoaderText}, nil
	})
	if err != nil {
		return api.OnLoadResult{Errors: []api.Message{messageFor(err, path)}}, nil
	}
	return api.OnLoadResult{Contents: &res.Contents, Loader: esbuildLoader(res.Loader)}, nil
}

// loadComponentStyle compiles a component stylesheet and exports the CSS as
// its default export, which Angular attaches to the component.
func (s *session) loadComponentStyle(path string) (api.OnLoadResult, error) {
	css, watch, err := s.styles.Compile(s.passContext(), path)
	if err != nil {
		return api.OnLoadResult{Errors: []api.Message{messageFor(err, path)}}, nil
	}
	quoted, err := json.Marshal(css)
	if err != nil {
		return api.OnLoadResult{}, err
	}
	contents := "export default " + string(quoted) + ";\n"
	return api.OnLoadResult{
		Contents:   &contents,
		Loader:     api.LoaderJS,
		WatchFiles: watch,
	}, nil
}

// loadGlobalStyle compiles a global stylesheet for the styles bundle.
func (s *session) loadGlobalStyle(path string) (api.OnLoadResult, error) {
	css, watch, err := s.styles.Compile(s.passContext(), path)
	if err != nil {
		return api.OnLoadResult{Errors: []api.Message{messageFor(err, path)}}, nil
	}
	return api.OnLoadResult{
		Contents:   &css,
		Loader:     api.LoaderCSS,
		ResolveDir: filepath.Dir(path),
		WatchFiles: watch,
	}, nil
}

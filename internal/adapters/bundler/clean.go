package bundler

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// deleteOutputPlugin removes the output directory when the build context is
// created. Rebuilds overwrite the previous outputs in place.
func (s *session) deleteOutputPlugin() api.Plugin {
	return api.Plugin{
		Name: "delete-output",
		Setup: func(build api.PluginBuild) {
			var (
				mu  sync.Mutex
				err = s.cleanOutput()
			)
			build.OnStart(func() (api.OnStartResult, error) {
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					return api.OnStartResult{}, nil
				}
				// Reported on the first pass only.
				msg := api.Message{Text: err.Error()}
				err = nil
				return api.OnStartResult{Errors: []api.Message{msg}}, nil
			})
		},
	}
}

func (s *session) cleanOutput() error {
	out := filepath.Clean(s.project.OutputDir())
	if out == filepath.Clean(s.project.Root) || out == filepath.Dir(out) {
		return zerr.With(zerr.With(domain.ErrOutputCleanFailed, "path", out), "reason", "refusing to remove project root")
	}
	if err := os.RemoveAll(out); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputCleanFailed.Error()), "path", out)
	}
	return nil
}

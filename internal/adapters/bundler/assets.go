package bundler

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// assetsPlugin copies the configured assets into the output directory once a
// pass succeeds. Files whose content already matches are left alone.
func (s *session) assetsPlugin() api.Plugin {
	return api.Plugin{
		Name: "assets",
		Setup: func(build api.PluginBuild) {
			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				if len(result.Errors) > 0 || len(s.project.Build.Assets) == 0 {
					return api.OnEndResult{}, nil
				}
				if err := s.copyAssets(s.passContext()); err != nil {
					return api.OnEndResult{Errors: []api.Message{{Text: err.Error()}}}, nil
				}
				return api.OnEndResult{}, nil
			})
		},
	}
}

func (s *session) copyAssets(ctx context.Context) error {
	copies, err := s.assets.Resolve(s.project.Root, s.project.OutputDir(), s.project.Build.Assets)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, c := range copies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if s.unchanged(c) {
				return nil
			}
			return copyFile(c.Source, c.Dest)
		})
	}
	return g.Wait()
}

func (s *session) unchanged(c domain.AssetCopy) bool {
	dest, err := s.hasher.ComputeFileHash(c.Dest)
	if err != nil {
		return false
	}
	src, err := s.hasher.ComputeFileHash(c.Source)
	return err == nil && src == dest
}

func copyFile(src, dest string) error {
	fail := func(err error) error {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrAssetCopyFailed.Error()), "source", src), "dest", dest)
	}

	//nolint:gosec // Sources come from the project's asset entries.
	in, err := os.Open(src)
	if err != nil {
		return fail(err)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return fail(err)
	}
	//nolint:gosec // Destinations are inside the output directory.
	out, err := os.Create(dest)
	if err != nil {
		return fail(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fail(err)
	}
	if err := out.Close(); err != nil {
		return fail(err)
	}
	return nil
}

package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.AssetResolver = (*AssetResolver)(nil)

// AssetResolver expands asset entries with doublestar globs.
type AssetResolver struct {
	walker *Walker
}

// NewAssetResolver creates a new AssetResolver.
func NewAssetResolver(walker *Walker) *AssetResolver {
	return &AssetResolver{walker: walker}
}

// Resolve expands assets into file copies.
//
// An entry without a glob names a file or a directory, which is copied to the
// root of outDir under its base name. A glob entry copies the files matching
// Glob below Input to Output, preserving their path relative to Input.
func (r *AssetResolver) Resolve(root, outDir string, assets []domain.Asset) ([]domain.AssetCopy, error) {
	seen := make(map[string]string)

	for _, asset := range assets {
		input := asset.Input
		if !filepath.IsAbs(input) {
			input = filepath.Join(root, input)
		}

		var (
			copies []domain.AssetCopy
			err    error
		)
		if asset.Glob == "" {
			copies, err = r.resolvePath(input, outDir, asset.Ignore)
		} else {
			copies, err = r.resolveGlob(input, filepath.Join(outDir, asset.Output), asset)
		}
		if err != nil {
			return nil, err
		}
		for _, c := range copies {
			seen[c.Dest] = c.Source
		}
	}

	result := make([]domain.AssetCopy, 0, len(seen))
	for dest, src := range seen {
		result = append(result, domain.AssetCopy{Source: src, Dest: dest})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Dest < result[j].Dest })
	return result, nil
}

func (r *AssetResolver) resolvePath(input, outDir string, ignores []string) ([]domain.AssetCopy, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidAsset.Error()), "path", input)
	}

	dest := filepath.Join(outDir, filepath.Base(input))
	if !info.IsDir() {
		return []domain.AssetCopy{{Source: input, Dest: dest}}, nil
	}

	var copies []domain.AssetCopy
	for file := range r.walker.WalkFiles(input, ignores) {
		rel, err := filepath.Rel(input, file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidAsset.Error()), "path", file)
		}
		copies = append(copies, domain.AssetCopy{Source: file, Dest: filepath.Join(dest, rel)})
	}
	return copies, nil
}

func (r *AssetResolver) resolveGlob(input, outDir string, asset domain.Asset) ([]domain.AssetCopy, error) {
	pattern := normalizeGlob(asset.Glob)

	matches, err := doublestar.Glob(os.DirFS(input), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrInvalidAsset.Error()), "glob", asset.Glob), "input", input)
	}

	copies := make([]domain.AssetCopy, 0, len(matches))
	for _, m := range matches {
		if ignored(m, asset.Ignore) {
			continue
		}
		copies = append(copies, domain.AssetCopy{
			Source: filepath.Join(input, filepath.FromSlash(m)),
			Dest:   filepath.Join(outDir, filepath.FromSlash(m)),
		})
	}
	return copies, nil
}

// normalizeGlob rewrites extglob negations, which doublestar does not
// support, to match everything.
func normalizeGlob(glob string) string {
	if strings.Contains(glob, "!(") {
		return "**/*"
	}
	return strings.TrimPrefix(glob, "/")
}

func ignored(rel string, ignores []string) bool {
	for _, ignore := range ignores {
		if matched, _ := doublestar.Match(ignore, rel); matched {
			return true
		}
	}
	return false
}

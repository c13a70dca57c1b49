// Package fs provides file system adapters for walking, hashing and
// resolving asset globs.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// skippedDirs are never walked.
var skippedDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root, skipping VCS metadata, node_modules
// and anything matching one of the ignores. Ignores are doublestar patterns
// matched against the slash separated path relative to root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if skipAction := w.shouldSkip(root, path, d, ignores); skipAction != nil {
				return skipAction
			}

			if d.IsDir() {
				return nil
			}

			if w.isIgnored(root, path, ignores) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// shouldSkip returns filepath.SkipDir for directories that must not be walked.
func (w *Walker) shouldSkip(root, path string, d fs.DirEntry, ignores []string) error {
	if !d.IsDir() || path == root {
		return nil
	}
	if skippedDirs[d.Name()] || w.isIgnored(root, path, ignores) {
		return filepath.SkipDir
	}
	return nil
}

func (w *Walker) isIgnored(root, path string, ignores []string) bool {
	if len(ignores) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, ignore := range ignores {
		if matched, _ := doublestar.Match(ignore, rel); matched {
			return true
		}
	}
	return false
}

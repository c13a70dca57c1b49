package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/adapters/fs"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.ts":                 "a",
		"app/app.component.ts":    "b",
		".git/config":             "c",
		".jj/store":               "d",
		"node_modules/lib/lib.js": "e",
	})

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, nil))

	assert.ElementsMatch(t, []string{
		filepath.Join(tmpDir, "main.ts"),
		filepath.Join(tmpDir, "app", "app.component.ts"),
	}, files)
}

func TestWalker_WalkFiles_WithIgnores(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.ts":            "a",
		"main.spec.ts":       "b",
		"app/a.spec.ts":      "c",
		"dist/main.js":       "d",
		"assets/logo.svg":    "e",
		"assets/raw/big.bin": "f",
	})

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, []string{"**/*.spec.ts", "dist", "assets/raw"}))

	assert.ElementsMatch(t, []string{
		filepath.Join(tmpDir, "main.ts"),
		filepath.Join(tmpDir, "assets", "logo.svg"),
	}, files)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{"a.ts": "a", "b.ts": "b", "c.ts": "c"})

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}

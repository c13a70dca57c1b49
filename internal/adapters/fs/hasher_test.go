package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/adapters/fs"
	"go.trai.ch/ngbuild/internal/core/domain"
)

func TestHasher_ComputeFileHash(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.ts")
	b := filepath.Join(tmpDir, "b.ts")
	require.NoError(t, os.WriteFile(a, []byte("export const a = 1;"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("export const a = 1;"), 0o600))

	h := fs.NewHasher()
	hashA, err := h.ComputeFileHash(a)
	require.NoError(t, err)
	hashB, err := h.ComputeFileHash(b)
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB)

	require.NoError(t, os.WriteFile(b, []byte("export const a = 2;"), 0o600))
	hashB, err = h.ComputeFileHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashB)
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	_, err := fs.NewHasher().ComputeFileHash(filepath.Join(t.TempDir(), "missing.ts"))

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFileHashFailed.Error())
}

func TestHasher_ComputeKey(t *testing.T) {
	h := fs.NewHasher()

	key := h.ComputeKey("fingerprint", "a.ts", "source")
	assert.Len(t, key, 16)
	assert.Equal(t, key, h.ComputeKey("fingerprint", "a.ts", "source"))
	assert.NotEqual(t, key, h.ComputeKey("fingerprint", "a.ts", "source2"))
	assert.NotEqual(t, h.ComputeKey("ab", "c"), h.ComputeKey("a", "bc"))
}

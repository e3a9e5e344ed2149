package filesystem_test

import (
	"path/filepath"
	"testing"

	"github.com/mknopf/deskprep/internal/adapters/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem_ReadWrite(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewRealFileSystem()
	path := filepath.Join(t.TempDir(), "starship.toml")

	require.NoError(t, fs.WriteFile(path, []byte("[font]"), 0o644))
	assert.True(t, fs.Exists(path))
	assert.False(t, fs.IsDir(path))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[font]", string(data))
}

func TestRealFileSystem_MkdirAllAndRename(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewRealFileSystem()
	root := t.TempDir()

	src := filepath.Join(root, "clone", "nvim")
	require.NoError(t, fs.MkdirAll(src, 0o755))
	require.NoError(t, fs.WriteFile(filepath.Join(src, "init.lua"), []byte("-- init"), 0o644))

	dest := filepath.Join(root, ".config", "nvim")
	require.NoError(t, fs.MkdirAll(filepath.Dir(dest), 0o755))
	require.NoError(t, fs.Rename(src, dest))

	assert.True(t, fs.IsDir(dest))
	assert.True(t, fs.Exists(filepath.Join(dest, "init.lua")))
	assert.False(t, fs.Exists(src))
}

func TestRealFileSystem_RemoveAll(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewRealFileSystem()
	root := t.TempDir()

	dir := filepath.Join(root, "stale")
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	require.NoError(t, fs.WriteFile(filepath.Join(dir, "leftover"), []byte("x"), 0o644))

	require.NoError(t, fs.RemoveAll(dir))
	assert.False(t, fs.Exists(dir))

	// Removing a missing path is a no-op.
	require.NoError(t, fs.RemoveAll(dir))
}

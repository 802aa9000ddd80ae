package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("a: 1\n"), 0644))
	}
}

func TestCollectRelativeWithGlobstar(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.yaml", "nested/b.yaml", "nested/deep/c.yml", "readme.md")

	reader := NewFileReader()
	files, err := reader.CollectRelative(dir, []string{"**/*.yaml", "**/*.yml"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "nested/b.yaml", "nested/deep/c.yml"}, files)
}

func TestCollectRelativeExcludeWins(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "keep.yaml", "skip/ignored.yaml")

	reader := NewFileReader()
	files, err := reader.CollectRelative(dir, []string{"**/*.yaml"}, []string{"skip/**"})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.yaml"}, files)
}

func TestCollectRelativeSkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.yaml", ".git/config.yaml")

	reader := NewFileReader()
	files, err := reader.CollectRelative(dir, []string{"**/*.yaml"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml"}, files)
}

func TestCollectRelativeRejectsFileRoot(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.yaml")

	reader := NewFileReader()
	_, err := reader.CollectRelative(filepath.Join(dir, "a.yaml"), nil, nil)
	assert.Error(t, err)
}

func TestCollectFilesMixesFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "single.yaml", "sub/x.yaml")

	reader := NewFileReader()
	files, err := reader.CollectFiles(
		[]string{filepath.Join(dir, "single.yaml"), filepath.Join(dir, "sub")},
		[]string{"**/*.yaml"}, nil)
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestCollectFilesMissingPath(t *testing.T) {
	reader := NewFileReader()
	_, err := reader.CollectFiles([]string{filepath.Join(t.TempDir(), "nope")}, nil, nil)
	assert.Error(t, err)
}

func TestReadFileAndExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0644))

	reader := NewFileReader()
	data, err := reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))

	exists, err := reader.FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = reader.FileExists(dir)
	require.NoError(t, err)
	assert.False(t, exists, "directories are not files")

	exists, err = reader.FileExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

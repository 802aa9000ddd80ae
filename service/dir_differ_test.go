package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/treediff/domain"
)

func setupDirs(t *testing.T) (string, string) {
	t.Helper()
	left := t.TempDir()
	right := t.TempDir()

	write := func(root, rel, content string) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}

	write(left, "same.yaml", "a: 1\n")
	write(right, "same.yaml", "a: 1\n")
	write(left, "changed.yaml", leftDoc)
	write(right, "changed.yaml", rightDoc)
	write(left, "only-left.yaml", "x: 1\n")
	write(right, "nested/only-right.yaml", "y: 2\n")
	return left, right
}

func dirRequest(left, right string) *domain.DirDiffRequest {
	req := domain.DefaultDirDiffRequest()
	req.LeftDir = left
	req.RightDir = right
	return req
}

func TestDirDifferStatuses(t *testing.T) {
	left, right := setupDirs(t)

	differ := NewDirDiffer(NewDiffService(), nil)
	resp, err := differ.DiffDirs(context.Background(), dirRequest(left, right))
	require.NoError(t, err)

	statuses := map[string]string{}
	for _, f := range resp.Files {
		statuses[f.RelPath] = f.Status
	}
	assert.Equal(t, "identical", statuses["same.yaml"])
	assert.Equal(t, "changed", statuses["changed.yaml"])
	assert.Equal(t, "removed", statuses["only-left.yaml"])
	assert.Equal(t, "added", statuses["nested/only-right.yaml"])

	assert.Equal(t, 1, resp.Changed)
	assert.Equal(t, 1, resp.Added)
	assert.Equal(t, 1, resp.Removed)
}

func TestDirDifferChangedSummary(t *testing.T) {
	left, right := setupDirs(t)

	differ := NewDirDiffer(NewDiffService(), nil)
	resp, err := differ.DiffDirs(context.Background(), dirRequest(left, right))
	require.NoError(t, err)

	for _, f := range resp.Files {
		if f.RelPath != "changed.yaml" {
			continue
		}
		require.NotNil(t, f.Summary)
		assert.Equal(t, 1, f.Summary.Updates)
		return
	}
	t.Fatal("changed.yaml missing from response")
}

func TestDirDifferFilesSorted(t *testing.T) {
	left, right := setupDirs(t)

	differ := NewDirDiffer(NewDiffService(), nil)
	resp, err := differ.DiffDirs(context.Background(), dirRequest(left, right))
	require.NoError(t, err)

	var rels []string
	for _, f := range resp.Files {
		rels = append(rels, f.RelPath)
	}
	assert.IsNonDecreasing(t, rels)
}

func TestDirDifferValidation(t *testing.T) {
	differ := NewDirDiffer(NewDiffService(), nil)
	_, err := differ.DiffDirs(context.Background(), &domain.DirDiffRequest{})
	assert.Error(t, err)
}

func TestDirDifferMissingDir(t *testing.T) {
	differ := NewDirDiffer(NewDiffService(), nil)
	req := dirRequest(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	_, err := differ.DiffDirs(context.Background(), req)
	assert.Error(t, err)
}

func TestDirDifferReportsProgress(t *testing.T) {
	left, right := setupDirs(t)

	pm := &recordingProgress{}
	differ := NewDirDiffer(NewDiffService(), pm)
	_, err := differ.DiffDirs(context.Background(), dirRequest(left, right))
	require.NoError(t, err)

	assert.Equal(t, 4, pm.max)
	assert.Equal(t, 4, pm.updates)
	assert.True(t, pm.completed)
	assert.True(t, pm.closed)
}

type recordingProgress struct {
	max       int
	updates   int
	completed bool
	closed    bool
}

func (r *recordingProgress) Initialize(maxValue int)        { r.max = maxValue }
func (r *recordingProgress) Start()                         {}
func (r *recordingProgress) Update(processed, total int)    { r.updates++ }
func (r *recordingProgress) Complete(success bool)          { r.completed = success }
func (r *recordingProgress) SetWriter(io.Writer) {}
func (r *recordingProgress) IsInteractive() bool { return false }
func (r *recordingProgress) Close()              { r.closed = true }

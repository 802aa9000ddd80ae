package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/treediff/internal/tree"
)

func TestSourceLoaderBuildsModuleTree(t *testing.T) {
	loader := NewSourceLoader()
	src := []byte("def add(a, b):\n    return a + b\n")

	tr, err := loader.Load(context.Background(), src)
	require.NoError(t, err)

	root := tr.Node(tr.Root())
	assert.Equal(t, "module", root.Kind)
	require.Len(t, root.Children, 1)

	fn := tr.Node(root.Children[0])
	assert.Equal(t, "function_definition", fn.Kind)
	assert.Equal(t, "add", fn.Label, "definitions carry their name as label")
}

func TestSourceLoaderLeavesCarryTokenText(t *testing.T) {
	loader := NewSourceLoader()
	tr, err := loader.Load(context.Background(), []byte("x = 42\n"))
	require.NoError(t, err)

	var leafValues []any
	for _, id := range tr.Preorder() {
		n := tr.Node(id)
		if len(n.Children) == 0 {
			leafValues = append(leafValues, n.Value)
		}
	}
	assert.Contains(t, leafValues, "x")
	assert.Contains(t, leafValues, "42")
}

func TestSourceLoaderRejectsBrokenSource(t *testing.T) {
	loader := NewSourceLoader()
	_, err := loader.Load(context.Background(), []byte("def broken(:\n"))
	assert.Error(t, err)
}

func TestSourceLoaderDeterministic(t *testing.T) {
	loader := NewSourceLoader()
	src := []byte("class Greeter:\n    def hello(self):\n        return \"hi\"\n")

	a, err := loader.Load(context.Background(), src)
	require.NoError(t, err)
	b, err := loader.Load(context.Background(), src)
	require.NoError(t, err)

	assert.True(t, tree.Equal(a, b))
}

func TestSourceLoaderRenameChangesOnlyLabel(t *testing.T) {
	loader := NewSourceLoader()
	a, err := loader.Load(context.Background(), []byte("def f():\n    return 1\n"))
	require.NoError(t, err)
	b, err := loader.Load(context.Background(), []byte("def g():\n    return 1\n"))
	require.NoError(t, err)

	fa := a.Node(a.Node(a.Root()).Children[0])
	fb := b.Node(b.Node(b.Root()).Children[0])
	assert.Equal(t, "f", fa.Label)
	assert.Equal(t, "g", fb.Label)
	assert.NotEqual(t, fa.Hash, fb.Hash)
}

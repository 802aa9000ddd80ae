package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleFunction(t *testing.T) {
	p := New()
	src := []byte("def add(a, b):\n    return a + b\n")

	result, err := p.Parse(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "module", result.RootNode.Type())

	funcs := NamedChildren(result.RootNode)
	require.Len(t, funcs, 1)
	assert.Equal(t, "function_definition", funcs[0].Type())
}

func TestParseRejectsBrokenSource(t *testing.T) {
	p := New()
	_, err := p.Parse(context.Background(), []byte("def broken(:\n"))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	p := New()
	result, err := p.ParseFile(context.Background(), strings.NewReader("x = 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "module", result.RootNode.Type())
}

func TestNodeText(t *testing.T) {
	p := New()
	src := []byte("name = \"value\"\n")
	result, err := p.Parse(context.Background(), src)
	require.NoError(t, err)

	stmt := NamedChildren(result.RootNode)[0]
	assert.Equal(t, "name = \"value\"", result.NodeText(stmt))
}

package service

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/internal/parser"
	"github.com/ludo-technologies/treediff/internal/tree"
)

// SourceLoader turns Python source files into diffable trees using the
// tree-sitter grammar. Node kinds are the grammar's named node types,
// definition nodes carry their name as label, and leaves carry the token
// text as value.
type SourceLoader struct {
	parser *parser.Parser
}

// NewSourceLoader creates a new source loader
func NewSourceLoader() *SourceLoader {
	return &SourceLoader{parser: parser.New()}
}

// LoadFile parses the Python file at path into a tree
func (l *SourceLoader) LoadFile(ctx context.Context, path string) (*tree.Tree, error) {
	reader := NewFileReader()
	data, err := reader.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := l.Load(ctx, data)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	return t, nil
}

// Load parses Python source bytes into a tree
func (l *SourceLoader) Load(ctx context.Context, source []byte) (*tree.Tree, error) {
	result, err := l.parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}

	b := tree.NewBuilder(l.nodeData(result, result.RootNode))
	l.addChildren(b, 0, result, result.RootNode)
	return b.Finish(), nil
}

func (l *SourceLoader) nodeData(r *parser.ParseResult, n *sitter.Node) tree.NodeData {
	data := tree.NodeData{Kind: n.Type(), Label: nodeName(r, n)}
	if n.NamedChildCount() == 0 {
		data.Value = r.NodeText(n)
	}
	return data
}

func (l *SourceLoader) addChildren(b *tree.Builder, parent tree.NodeID, r *parser.ParseResult, n *sitter.Node) {
	for _, child := range parser.NamedChildren(n) {
		id := b.MustAddChild(parent, l.nodeData(r, child))
		l.addChildren(b, id, r, child)
	}
}

// nodeName extracts the declared name of definition nodes so functions
// and classes keep their identity through the matcher even when their
// bodies change.
func nodeName(r *parser.ParseResult, n *sitter.Node) string {
	switch n.Type() {
	case "function_definition", "class_definition":
		if name := n.ChildByFieldName("name"); name != nil {
			return r.NodeText(name)
		}
	}
	return ""
}

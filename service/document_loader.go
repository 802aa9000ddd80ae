package service

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/internal/constants"
	"github.com/ludo-technologies/treediff/internal/tree"
)

// Node kinds produced by the document loader
const (
	KindMapping  = "mapping"
	KindSequence = "sequence"
	KindScalar   = "scalar"
)

// DocumentLoader turns JSON and YAML documents into diffable trees.
// JSON is parsed by the YAML parser, of which it is a subset.
//
// Mappings become container nodes whose children carry the key as label,
// sequences become containers with unlabeled ordered children, scalars
// become leaves with a typed value.
type DocumentLoader struct{}

// NewDocumentLoader creates a new document loader
func NewDocumentLoader() *DocumentLoader {
	return &DocumentLoader{}
}

// LoadFile parses the document at path into a tree
func (l *DocumentLoader) LoadFile(path string) (*tree.Tree, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	if info.Size() > constants.MaxDocumentSizeBytes {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("document too large: %s (%d bytes)", path, info.Size()), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}

	t, err := l.Load(data)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	return t, nil
}

// Load parses document bytes into a tree
func (l *DocumentLoader) Load(data []byte) (*tree.Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	root := documentRoot(&doc)
	if root == nil {
		return nil, fmt.Errorf("document is empty")
	}

	b := tree.NewBuilder(l.nodeData(root, ""))
	if err := l.addChildren(b, 0, root); err != nil {
		return nil, err
	}
	return b.Finish(), nil
}

// documentRoot unwraps the document wrapper node yaml.v3 puts on top
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return resolveAlias(doc.Content[0])
	}
	if doc.Kind == 0 {
		return nil
	}
	return resolveAlias(doc)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

func (l *DocumentLoader) nodeData(n *yaml.Node, label string) tree.NodeData {
	switch n.Kind {
	case yaml.MappingNode:
		return tree.NodeData{Kind: KindMapping, Label: label}
	case yaml.SequenceNode:
		return tree.NodeData{Kind: KindSequence, Label: label}
	default:
		return tree.NodeData{Kind: KindScalar, Label: label, Value: scalarValue(n)}
	}
}

func (l *DocumentLoader) addChildren(b *tree.Builder, parent tree.NodeID, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		// Content alternates key, value
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			value := resolveAlias(n.Content[i+1])
			id, err := b.AddChild(parent, l.nodeData(value, key.Value))
			if err != nil {
				return err
			}
			if err := l.addChildren(b, id, value); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			item = resolveAlias(item)
			id, err := b.AddChild(parent, l.nodeData(item, ""))
			if err != nil {
				return err
			}
			if err := l.addChildren(b, id, item); err != nil {
				return err
			}
		}
	}
	return nil
}

// scalarValue decodes a scalar node into a typed Go value so that 1,
// "1" and 1.0 compare as different leaf contents.
func scalarValue(n *yaml.Node) any {
	switch n.Tag {
	case "!!null":
		return nil
	case "!!bool":
		v, err := strconv.ParseBool(n.Value)
		if err == nil {
			return v
		}
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 10, 64)
		if err == nil {
			return v
		}
	case "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err == nil {
			return v
		}
	}
	return n.Value
}

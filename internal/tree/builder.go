package tree

import (
	"fmt"
)

// Builder constructs a Tree incrementally. Nodes are appended with AddChild
// and the structural caches (hash, height, size, preorder ranks) are computed
// once by Finish. A Builder must not be reused after Finish.
type Builder struct {
	nodes    []Node
	finished bool
}

// NewBuilder creates a builder holding only the root node.
func NewBuilder(root NodeData) *Builder {
	b := &Builder{}
	b.nodes = append(b.nodes, Node{
		ID:         0,
		Kind:       root.Kind,
		Label:      root.Label,
		Value:      root.Value,
		Properties: root.Properties,
		Parent:     InvalidNode,
	})
	return b
}

// AddChild appends a new node as the last child of parent and returns its ID.
func (b *Builder) AddChild(parent NodeID, data NodeData) (NodeID, error) {
	if b.finished {
		return InvalidNode, fmt.Errorf("builder already finished")
	}
	if parent < 0 || int(parent) >= len(b.nodes) {
		return InvalidNode, fmt.Errorf("invalid parent node ID %d", parent)
	}
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		ID:         id,
		Kind:       data.Kind,
		Label:      data.Label,
		Value:      data.Value,
		Properties: data.Properties,
		Parent:     parent,
	})
	b.nodes[parent].Children = append(b.nodes[parent].Children, id)
	return id, nil
}

// MustAddChild is AddChild for construction code that controls its inputs,
// such as tests and loaders building from already-validated structures.
func (b *Builder) MustAddChild(parent NodeID, data NodeData) NodeID {
	id, err := b.AddChild(parent, data)
	if err != nil {
		panic(err)
	}
	return id
}

// Finish computes the cached hash, height, size and preorder ranks and
// returns the immutable tree.
func (b *Builder) Finish() *Tree {
	b.finished = true
	t := &Tree{nodes: b.nodes, root: 0, preorder: make([]int, len(b.nodes))}
	finalize(t, t.root)
	rank := 0
	assignPreorder(t, t.root, &rank)
	return t
}

// finalize fills hash, height and size bottom-up.
func finalize(t *Tree, id NodeID) {
	n := &t.nodes[id]
	childHashes := make([]uint64, 0, len(n.Children))
	height := 0
	size := 1
	for _, c := range n.Children {
		finalize(t, c)
		cn := &t.nodes[c]
		childHashes = append(childHashes, cn.Hash)
		if cn.Height+1 > height {
			height = cn.Height + 1
		}
		size += cn.Size
	}
	data := NodeData{Kind: n.Kind, Label: n.Label, Value: n.Value, Properties: n.Properties}
	n.Hash = subtreeHash(&data, len(n.Children) == 0, childHashes)
	n.Height = height
	n.Size = size
}

func assignPreorder(t *Tree, id NodeID, rank *int) {
	t.preorder[id] = *rank
	*rank++
	for _, c := range t.nodes[id].Children {
		assignPreorder(t, c, rank)
	}
}

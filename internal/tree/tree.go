// Package tree provides the arena-indexed ordered tree model consumed by the
// diff engine. Nodes are addressed by integer IDs that stay stable for the
// lifetime of the tree; parent/child links are stored as indices so the
// naturally cyclic parent/child shape never forms an ownership cycle.
package tree

import (
	"fmt"
)

// NodeID identifies a node within a single tree. IDs are indices into the
// tree's arena and are never reused.
type NodeID int

// InvalidNode is the ID used where no node applies (e.g. the root's parent).
const InvalidNode NodeID = -1

// Properties is the opaque payload a node may carry. The diff engine only
// ever asks whether two payloads are equal; implementers must not assume any
// other capability is used.
type Properties interface {
	Equal(other Properties) bool
}

// NodeData is the caller-supplied content of a node. Value is optional leaf
// content and must be a comparable value; it is compared with == to decide
// whether an update is needed.
type NodeData struct {
	Kind       string
	Label      string
	Value      any
	Properties Properties
}

// Node is a single node in the arena. All structural fields are computed once
// when the builder finishes and are read-only afterwards.
type Node struct {
	ID         NodeID
	Kind       string
	Label      string
	Value      any
	Properties Properties

	// Hash is the order-sensitive structural hash of the subtree rooted here.
	Hash uint64
	// Height is the longest path from this node down to a leaf (leaves = 0).
	Height int
	// Size is the number of nodes in this subtree, including this node.
	Size int

	Parent   NodeID
	Children []NodeID
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// String returns a short description of the node.
func (n *Node) String() string {
	if n.Value != nil {
		return fmt.Sprintf("Node{ID: %d, Kind: %s, Label: %s, Value: %v}", n.ID, n.Kind, n.Label, n.Value)
	}
	return fmt.Sprintf("Node{ID: %d, Kind: %s, Label: %s, Children: %d}", n.ID, n.Kind, n.Label, len(n.Children))
}

// Tree is an immutable ordered labeled tree. Construct one with a Builder;
// the diff engine never mutates a Tree.
type Tree struct {
	nodes    []Node
	root     NodeID
	preorder []int // preorder rank per node ID, used as a deterministic tie-break
}

// Root returns the root node ID.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given ID. The ID must come from this tree.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// PreorderRank returns the position of the node in a preorder traversal.
// Ranks give the engine a stable ordering that does not depend on map
// iteration order.
func (t *Tree) PreorderRank(id NodeID) int {
	return t.preorder[id]
}

// Preorder returns all node IDs in preorder (parent before children).
func (t *Tree) Preorder() []NodeID {
	out := make([]NodeID, 0, len(t.nodes))
	t.walkPreorder(t.root, &out)
	return out
}

func (t *Tree) walkPreorder(id NodeID, out *[]NodeID) {
	*out = append(*out, id)
	for _, c := range t.nodes[id].Children {
		t.walkPreorder(c, out)
	}
}

// Postorder returns all node IDs in postorder (children before parents).
func (t *Tree) Postorder() []NodeID {
	out := make([]NodeID, 0, len(t.nodes))
	t.walkPostorder(t.root, &out)
	return out
}

func (t *Tree) walkPostorder(id NodeID, out *[]NodeID) {
	for _, c := range t.nodes[id].Children {
		t.walkPostorder(c, out)
	}
	*out = append(*out, id)
}

// BreadthFirst returns all node IDs level by level, parents before children.
func (t *Tree) BreadthFirst() []NodeID {
	out := make([]NodeID, 0, len(t.nodes))
	queue := []NodeID{t.root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		queue = append(queue, t.nodes[id].Children...)
	}
	return out
}

// Descendants returns the proper descendants of a node in preorder, not
// including the node itself.
func (t *Tree) Descendants(id NodeID) []NodeID {
	var out []NodeID
	for _, c := range t.nodes[id].Children {
		t.walkPreorder(c, &out)
	}
	return out
}

// IsAncestor reports whether anc is a proper ancestor of id.
func (t *Tree) IsAncestor(anc, id NodeID) bool {
	for p := t.nodes[id].Parent; p != InvalidNode; p = t.nodes[p].Parent {
		if p == anc {
			return true
		}
	}
	return false
}

// ChildIndex returns the position of id among its parent's children, or -1
// for the root.
func (t *Tree) ChildIndex(id NodeID) int {
	p := t.nodes[id].Parent
	if p == InvalidNode {
		return -1
	}
	for i, c := range t.nodes[p].Children {
		if c == id {
			return i
		}
	}
	return -1
}

// sameContent reports whether two nodes agree on kind, label, value and
// properties. Structure is not considered.
func sameContent(a, b *Node) bool {
	if a.Kind != b.Kind || a.Label != b.Label || a.Value != b.Value {
		return false
	}
	return PropsEqual(a.Properties, b.Properties)
}

// PropsEqual compares two optional properties payloads. Nil equals nil only.
func PropsEqual(a, b Properties) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// ContentEqual reports whether node a of this tree and node b of other carry
// the same kind, label, value and properties.
func (t *Tree) ContentEqual(a NodeID, other *Tree, b NodeID) bool {
	return sameContent(t.Node(a), other.Node(b))
}

// Equal reports whether two trees are identical by kind, label, value,
// properties and child order.
func Equal(a, b *Tree) bool {
	return subtreeEqual(a, a.root, b, b.root)
}

func subtreeEqual(a *Tree, an NodeID, b *Tree, bn NodeID) bool {
	na, nb := a.Node(an), b.Node(bn)
	if !sameContent(na, nb) || len(na.Children) != len(nb.Children) {
		return false
	}
	for i := range na.Children {
		if !subtreeEqual(a, na.Children[i], b, nb.Children[i]) {
			return false
		}
	}
	return true
}

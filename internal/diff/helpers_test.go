package diff

import (
	"testing"

	"github.com/ludo-technologies/treediff/internal/tree"
)

// testNode is a compact literal form for building test trees.
type testNode struct {
	kind  string
	label string
	value any
	kids  []testNode
}

func n(kind, label string, value any, kids ...testNode) testNode {
	return testNode{kind: kind, label: label, value: value, kids: kids}
}

func build(t *testing.T, root testNode) *tree.Tree {
	t.Helper()
	b := tree.NewBuilder(tree.NodeData{Kind: root.kind, Label: root.label, Value: root.value})
	addKids(b, 0, root.kids)
	return b.Finish()
}

func addKids(b *tree.Builder, parent tree.NodeID, kids []testNode) {
	for _, k := range kids {
		id := b.MustAddChild(parent, tree.NodeData{Kind: k.kind, Label: k.label, Value: k.value})
		addKids(b, id, k.kids)
	}
}

// block builds a height-2 subtree whose hash is stable across trees; the
// top-down matcher picks these up wholesale.
func block(name string) testNode {
	return n("block", name, nil,
		n("span", name+"-span", nil,
			n("scalar", name+"-text", name+" content")))
}

// findByLabel returns the ID of the unique node carrying the label.
func findByLabel(t *testing.T, tr *tree.Tree, label string) tree.NodeID {
	t.Helper()
	found := tree.InvalidNode
	for _, id := range tr.Preorder() {
		if tr.Node(id).Label == label {
			if found != tree.InvalidNode {
				t.Fatalf("label %q is not unique", label)
			}
			found = id
		}
	}
	if found == tree.InvalidNode {
		t.Fatalf("label %q not found", label)
	}
	return found
}

func opsOfKind(ops []EditOp, kind OpKind) []EditOp {
	var out []EditOp
	for _, op := range ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

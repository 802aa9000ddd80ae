package diff

import (
	"fmt"

	"github.com/ludo-technologies/treediff/internal/tree"
)

// Apply replays an edit script against tree A and returns the resulting
// tree. It accepts both raw and simplified scripts and serves as the test
// oracle: applying the script produced by Diff must yield a tree equal to B.
// The matching is needed to resolve the B-side parent references ops carry.
func Apply(a, b *tree.Tree, m *Matching, ops []EditOp) (*tree.Tree, error) {
	ap := &applier{b: b}
	ap.init(a, m)

	for _, op := range ops {
		var err error
		switch op.Kind {
		case OpInsert:
			err = ap.insert(op)
		case OpDelete:
			err = ap.delete(op)
		case OpUpdate:
			err = ap.update(op)
		case OpMove:
			err = ap.move(op)
		default:
			err = fmt.Errorf("unknown op kind %d", op.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("applying %s: %w", op, err)
		}
	}

	roots := ap.nodes[ap.root].children
	if len(roots) != 1 {
		return nil, fmt.Errorf("script left %d roots", len(roots))
	}
	return ap.freeze(roots[0]), nil
}

type appliedNode struct {
	kind     string
	label    string
	value    any
	props    tree.Properties
	parent   int
	children []int
}

type applier struct {
	b     *tree.Tree
	nodes []appliedNode
	root  int // synthetic super-root, mirrors the generator's working copy
	byA   map[tree.NodeID]int
	byB   map[tree.NodeID]int
}

func (ap *applier) init(a *tree.Tree, m *Matching) {
	ap.nodes = make([]appliedNode, 0, a.Len()+1)
	ap.nodes = append(ap.nodes, appliedNode{parent: -1})
	ap.root = 0
	ap.byA = make(map[tree.NodeID]int, a.Len())
	ap.byB = make(map[tree.NodeID]int)

	for i := 0; i < a.Len(); i++ {
		n := a.Node(tree.NodeID(i))
		parent := 0
		if n.Parent != tree.InvalidNode {
			parent = int(n.Parent) + 1
		}
		children := make([]int, len(n.Children))
		for j, c := range n.Children {
			children[j] = int(c) + 1
		}
		ap.nodes = append(ap.nodes, appliedNode{
			kind:     n.Kind,
			label:    n.Label,
			value:    n.Value,
			props:    n.Properties,
			parent:   parent,
			children: children,
		})
		ap.byA[n.ID] = i + 1
	}
	ap.nodes[0].children = []int{int(a.Root()) + 1}

	for _, p := range m.Pairs() {
		ap.byB[p.B] = ap.byA[p.A]
	}
}

func (ap *applier) resolveA(id tree.NodeID) (int, error) {
	idx, ok := ap.byA[id]
	if !ok {
		return 0, fmt.Errorf("unknown A node %d", id)
	}
	return idx, nil
}

func (ap *applier) resolveParent(id tree.NodeID) (int, error) {
	if id == tree.InvalidNode {
		return ap.root, nil
	}
	idx, ok := ap.byB[id]
	if !ok {
		return 0, fmt.Errorf("unresolved parent b%d", id)
	}
	return idx, nil
}

func (ap *applier) insert(op EditOp) error {
	parent, err := ap.resolveParent(op.Parent)
	if err != nil {
		return err
	}
	idx := ap.newNode(op.Node, parent)
	ap.splice(parent, op.Pos, idx)
	if op.Subtree {
		ap.growSubtree(op.Node, idx)
	}
	return nil
}

// newNode materializes the B node content as a fresh applied node.
func (ap *applier) newNode(bID tree.NodeID, parent int) int {
	bn := ap.b.Node(bID)
	idx := len(ap.nodes)
	ap.nodes = append(ap.nodes, appliedNode{
		kind:   bn.Kind,
		label:  bn.Label,
		value:  bn.Value,
		props:  bn.Properties,
		parent: parent,
	})
	ap.byB[bID] = idx
	return idx
}

// growSubtree recreates the descendants of a wholesale-inserted B subtree.
func (ap *applier) growSubtree(bID tree.NodeID, idx int) {
	for _, c := range ap.b.Node(bID).Children {
		ci := ap.newNode(c, idx)
		ap.nodes[idx].children = append(ap.nodes[idx].children, ci)
		ap.growSubtree(c, ci)
	}
}

func (ap *applier) delete(op EditOp) error {
	idx, err := ap.resolveA(op.Node)
	if err != nil {
		return err
	}
	ap.detach(idx)
	ap.nodes[idx].parent = -1
	return nil
}

func (ap *applier) update(op EditOp) error {
	idx, err := ap.resolveA(op.Node)
	if err != nil {
		return err
	}
	n := &ap.nodes[idx]
	n.label = op.Label
	n.value = op.Value
	n.props = op.Properties
	return nil
}

func (ap *applier) move(op EditOp) error {
	idx, err := ap.resolveA(op.Node)
	if err != nil {
		return err
	}
	parent, err := ap.resolveParent(op.Parent)
	if err != nil {
		return err
	}
	ap.detach(idx)
	ap.nodes[idx].parent = parent
	ap.splice(parent, op.Pos, idx)
	return nil
}

func (ap *applier) detach(idx int) {
	p := ap.nodes[idx].parent
	if p < 0 {
		return
	}
	siblings := ap.nodes[p].children
	for i, c := range siblings {
		if c == idx {
			ap.nodes[p].children = append(siblings[:i], siblings[i+1:]...)
			return
		}
	}
}

func (ap *applier) splice(parent, pos, idx int) {
	children := ap.nodes[parent].children
	if pos > len(children) {
		pos = len(children)
	}
	if pos < 0 {
		pos = 0
	}
	children = append(children, 0)
	copy(children[pos+1:], children[pos:])
	children[pos] = idx
	ap.nodes[parent].children = children
}

// freeze converts the applied structure back into an immutable tree.
func (ap *applier) freeze(rootIdx int) *tree.Tree {
	rn := &ap.nodes[rootIdx]
	builder := tree.NewBuilder(tree.NodeData{
		Kind:       rn.kind,
		Label:      rn.label,
		Value:      rn.value,
		Properties: rn.props,
	})
	ap.freezeChildren(builder, rootIdx, 0)
	return builder.Finish()
}

func (ap *applier) freezeChildren(builder *tree.Builder, idx int, parent tree.NodeID) {
	for _, c := range ap.nodes[idx].children {
		cn := &ap.nodes[c]
		id := builder.MustAddChild(parent, tree.NodeData{
			Kind:       cn.kind,
			Label:      cn.label,
			Value:      cn.value,
			Properties: cn.props,
		})
		ap.freezeChildren(builder, c, id)
	}
}

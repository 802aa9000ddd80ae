package diff

import (
	"github.com/ludo-technologies/treediff/internal/tree"
)

// workingCopy is the generator's private mutable replica of tree A. A
// synthetic super-root sits above the copied root so that an unmatched B root
// can be inserted and the old root deleted without special cases. Nodes never
// leave the arena; removal just unlinks them.
type wNode struct {
	aID      tree.NodeID // original A node, InvalidNode for inserted nodes
	bID      tree.NodeID // B counterpart, InvalidNode when unmatched
	parent   int
	children []int
}

type workingCopy struct {
	nodes []wNode
	byB   map[tree.NodeID]int
	root  int
}

func newWorkingCopy(a, b *tree.Tree, m *Matching) *workingCopy {
	w := &workingCopy{
		nodes: make([]wNode, 0, a.Len()+1),
		byB:   make(map[tree.NodeID]int, b.Len()),
	}
	w.nodes = append(w.nodes, wNode{aID: tree.InvalidNode, bID: tree.InvalidNode, parent: -1})
	w.root = 0

	// A node with ID i lives at working index i+1.
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
		wn := wNode{aID: n.ID, bID: m.GetB(n.ID), parent: parent, children: children}
		w.nodes = append(w.nodes, wn)
		if wn.bID != tree.InvalidNode {
			w.byB[wn.bID] = i + 1
		}
	}
	w.nodes[0].children = []int{int(a.Root()) + 1}
	return w
}

// partnerOfB resolves a B node to its working-copy counterpart. InvalidNode
// stands for the conceptual parent of B's root and resolves to the
// super-root. The B node must be matched or previously inserted; the
// breadth-first processing order guarantees that for parents.
func (w *workingCopy) partnerOfB(b tree.NodeID) int {
	if b == tree.InvalidNode {
		return w.root
	}
	return w.byB[b]
}

// insert creates a working node for B node b under parent at position pos
// and returns its index.
func (w *workingCopy) insert(parent, pos int, b tree.NodeID) int {
	idx := len(w.nodes)
	w.nodes = append(w.nodes, wNode{aID: tree.InvalidNode, bID: b, parent: parent})
	w.spliceChild(parent, pos, idx)
	w.byB[b] = idx
	return idx
}

// move detaches a node and reattaches it under parent at position pos. The
// position is interpreted after detaching, matching how Apply replays ops.
func (w *workingCopy) move(idx, parent, pos int) {
	w.detach(idx)
	w.nodes[idx].parent = parent
	w.spliceChild(parent, pos, idx)
}

// remove unlinks a node from its parent. The caller removes children first.
func (w *workingCopy) remove(idx int) {
	w.detach(idx)
	w.nodes[idx].parent = -1
}

func (w *workingCopy) detach(idx int) {
	p := w.nodes[idx].parent
	if p < 0 {
		return
	}
	siblings := w.nodes[p].children
	for i, c := range siblings {
		if c == idx {
			w.nodes[p].children = append(siblings[:i], siblings[i+1:]...)
			return
		}
	}
}

func (w *workingCopy) spliceChild(parent, pos, idx int) {
	children := w.nodes[parent].children
	if pos > len(children) {
		pos = len(children)
	}
	if pos < 0 {
		pos = 0
	}
	children = append(children, 0)
	copy(children[pos+1:], children[pos:])
	children[pos] = idx
	w.nodes[parent].children = children
}

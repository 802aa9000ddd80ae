package diff

import (
	"github.com/ludo-technologies/treediff/internal/tree"
)

// Simplify removes operations implied by an ancestor's operation without
// changing the net effect of applying the script:
//
//   - a DELETE under a deleted ancestor is implied by the ancestor's removal;
//   - an INSERT under an inserted ancestor whose whole B subtree is inserted
//     is carried by the ancestor (which is then flagged as a subtree insert);
//   - a MOVE under a moved ancestor is carried by the ancestor when the
//     node's position inside the moved subtree did not change.
//
// The remaining ops keep their original order; a new slice is returned.
func Simplify(ops []EditOp, a, b *tree.Tree) []EditOp {
	deleted := make(map[tree.NodeID]bool)
	inserted := make(map[tree.NodeID]bool)
	moved := make(map[tree.NodeID]tree.NodeID) // moved A node -> its B match
	for _, op := range ops {
		switch op.Kind {
		case OpDelete:
			deleted[op.Node] = true
		case OpInsert:
			inserted[op.Node] = true
		case OpMove:
			moved[op.Node] = op.To
		}
	}

	// insertedInSubtree counts inserted nodes per B subtree; an inserted node
	// whose count equals its subtree size is a wholesale-inserted subtree.
	insertedInSubtree := make(map[tree.NodeID]int, len(inserted))
	for _, id := range b.Postorder() {
		cnt := 0
		if inserted[id] {
			cnt = 1
		}
		for _, c := range b.Node(id).Children {
			cnt += insertedInSubtree[c]
		}
		insertedInSubtree[id] = cnt
	}
	wholesale := func(id tree.NodeID) bool {
		return inserted[id] && insertedInSubtree[id] == b.Node(id).Size
	}

	out := make([]EditOp, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case OpDelete:
			if hasDeletedAncestor(a, op.Node, deleted) {
				continue
			}
		case OpInsert:
			if hasWholesaleInsertedAncestor(b, op.Node, wholesale) {
				continue
			}
			if wholesale(op.Node) && !b.Node(op.Node).IsLeaf() {
				op.Subtree = true
			}
		case OpMove:
			if carriedByAncestorMove(a, b, op, moved) {
				continue
			}
		}
		out = append(out, op)
	}
	return out
}

func hasDeletedAncestor(a *tree.Tree, id tree.NodeID, deleted map[tree.NodeID]bool) bool {
	for p := a.Node(id).Parent; p != tree.InvalidNode; p = a.Node(p).Parent {
		if deleted[p] {
			return true
		}
	}
	return false
}

func hasWholesaleInsertedAncestor(b *tree.Tree, id tree.NodeID, wholesale func(tree.NodeID) bool) bool {
	for p := b.Node(id).Parent; p != tree.InvalidNode; p = b.Node(p).Parent {
		if wholesale(p) {
			return true
		}
	}
	return false
}

// carriedByAncestorMove reports whether the moved node sits at the same
// relative position inside some moved ancestor's subtree on both sides, in
// which case the ancestor's move already carries it.
func carriedByAncestorMove(a, b *tree.Tree, op EditOp, moved map[tree.NodeID]tree.NodeID) bool {
	for p := a.Node(op.Node).Parent; p != tree.InvalidNode; p = a.Node(p).Parent {
		ancB, ok := moved[p]
		if !ok {
			continue
		}
		if samePositionWithin(a, p, op.Node, b, ancB, op.To) {
			return true
		}
	}
	return false
}

// samePositionWithin compares the child-index paths anc->d in A and
// ancB->dB in B.
func samePositionWithin(a *tree.Tree, anc, d tree.NodeID, b *tree.Tree, ancB, dB tree.NodeID) bool {
	pathA, okA := indexPath(a, anc, d)
	pathB, okB := indexPath(b, ancB, dB)
	if !okA || !okB || len(pathA) != len(pathB) {
		return false
	}
	for i := range pathA {
		if pathA[i] != pathB[i] {
			return false
		}
	}
	return true
}

// indexPath returns the sequence of child indices leading from anc down to
// id, or ok=false when anc is not an ancestor of id.
func indexPath(t *tree.Tree, anc, id tree.NodeID) ([]int, bool) {
	var rev []int
	for cur := id; cur != anc; {
		p := t.Node(cur).Parent
		if p == tree.InvalidNode {
			return nil, false
		}
		rev = append(rev, t.ChildIndex(cur))
		cur = p
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev, true
}

package diff

import (
	"fmt"

	"github.com/ludo-technologies/treediff/internal/tree"
)

// OpKind discriminates the four edit operation variants.
type OpKind int

// Edit operation kinds.
const (
	OpInsert OpKind = iota
	OpDelete
	OpUpdate
	OpMove
)

// String returns the canonical lower-case name of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpUpdate:
		return "update"
	case OpMove:
		return "move"
	default:
		return "unknown"
	}
}

// EditOp is a single operation of the edit script transforming tree A into
// tree B.
//
// Node references tree B for inserts and tree A for deletes, updates and
// moves. Parent is always a tree B node (the destination parent's match
// context); InvalidNode stands for the root level. Pos is the child index in
// the generator's working copy at the moment the op is conceptually applied,
// not the final index in B.
type EditOp struct {
	Kind OpKind

	// Node is the A node for Delete/Update/Move, the B node for Insert.
	Node tree.NodeID

	// To is the B-side match of Node for Update/Move; InvalidNode otherwise.
	To tree.NodeID

	// Parent is the destination parent as a B node (Insert/Move).
	Parent tree.NodeID

	// Pos is the destination child index (Insert/Move).
	Pos int

	// New content carried by Insert and Update ops.
	Label      string
	Value      any
	Properties tree.Properties

	// Subtree marks an Insert whose whole B subtree is implied; set by the
	// simplifier when every descendant insert was dropped.
	Subtree bool
}

// String renders the op for debugging and plain text output.
func (op EditOp) String() string {
	switch op.Kind {
	case OpInsert:
		return fmt.Sprintf("insert b%d under b%d at %d", op.Node, op.Parent, op.Pos)
	case OpDelete:
		return fmt.Sprintf("delete a%d", op.Node)
	case OpUpdate:
		return fmt.Sprintf("update a%d", op.Node)
	case OpMove:
		return fmt.Sprintf("move a%d under b%d at %d", op.Node, op.Parent, op.Pos)
	default:
		return "unknown op"
	}
}

// GenerateEditScript produces the raw ordered operation sequence turning A
// into B under the given matching. It follows Chawathe's algorithm: tree B is
// walked breadth-first over a private working copy of A that is mutated
// virtually as operations are decided; the caller's trees are never touched.
func GenerateEditScript(a, b *tree.Tree, m *Matching) []EditOp {
	g := &scriptGenerator{
		a: a,
		b: b,
		w: newWorkingCopy(a, b, m),

		bInOrder: make(map[tree.NodeID]bool),
	}
	return g.run()
}

type scriptGenerator struct {
	a *tree.Tree
	b *tree.Tree
	w *workingCopy

	ops []EditOp

	// In-order marks per Chawathe: a B sibling is in order when its relative
	// sequence among already-placed matched siblings agrees with B.
	bInOrder map[tree.NodeID]bool
}

func (g *scriptGenerator) run() []EditOp {
	for _, x := range g.b.BreadthFirst() {
		xn := g.b.Node(x)
		y := xn.Parent

		wx, matched := g.w.byB[x]
		if !matched {
			k := g.findPos(x)
			wx = g.w.insert(g.w.partnerOfB(y), k, x)
			g.ops = append(g.ops, EditOp{
				Kind:       OpInsert,
				Node:       x,
				To:         tree.InvalidNode,
				Parent:     y,
				Pos:        k,
				Label:      xn.Label,
				Value:      xn.Value,
				Properties: xn.Properties,
			})
			g.bInOrder[x] = true
		} else {
			if g.w.nodes[wx].parent != g.w.partnerOfB(y) {
				k := g.findPos(x)
				g.ops = append(g.ops, EditOp{
					Kind:   OpMove,
					Node:   g.w.nodes[wx].aID,
					To:     x,
					Parent: y,
					Pos:    k,
				})
				g.w.move(wx, g.w.partnerOfB(y), k)
				g.bInOrder[x] = true
			}
			if aID := g.w.nodes[wx].aID; aID != tree.InvalidNode {
				an := g.a.Node(aID)
				if an.Label != xn.Label || an.Value != xn.Value || !tree.PropsEqual(an.Properties, xn.Properties) {
					g.ops = append(g.ops, EditOp{
						Kind:       OpUpdate,
						Node:       aID,
						To:         x,
						Parent:     tree.InvalidNode,
						Label:      xn.Label,
						Value:      xn.Value,
						Properties: xn.Properties,
					})
				}
			}
		}

		g.alignChildren(wx, x)
	}

	g.deleteUnmatched(g.w.root)
	return g.ops
}

// alignChildren fixes the ordering of the already-placed matched children of
// a matched pair. Only siblings outside the longest common subsequence of
// matched child pairs are moved, which keeps a single out-of-place child from
// triggering a burst of moves.
func (g *scriptGenerator) alignChildren(wx int, x tree.NodeID) {
	for _, d := range g.b.Node(x).Children {
		delete(g.bInOrder, d)
	}

	// s1: working children whose partners are children of x, in working
	// order. s2: B children with partners among the working children, in
	// destination order.
	var s1 []int
	for _, c := range g.w.nodes[wx].children {
		if d := g.w.nodes[c].bID; d != tree.InvalidNode && g.b.Node(d).Parent == x {
			s1 = append(s1, c)
		}
	}
	var s2 []tree.NodeID
	for _, d := range g.b.Node(x).Children {
		if c, ok := g.w.byB[d]; ok && g.w.nodes[c].parent == wx {
			s2 = append(s2, d)
		}
	}

	inLCS := make(map[int]bool)
	for _, pair := range lcsPairs(s1, s2, func(c int, d tree.NodeID) bool {
		return g.w.nodes[c].bID == d
	}) {
		g.bInOrder[pair.d] = true
		inLCS[pair.c] = true
	}

	for _, d := range s2 {
		c := g.w.byB[d]
		if inLCS[c] {
			continue
		}
		k := g.movePos(c, wx, g.findPos(d))
		g.ops = append(g.ops, EditOp{
			Kind:   OpMove,
			Node:   g.w.nodes[c].aID,
			To:     d,
			Parent: x,
			Pos:    k,
		})
		g.w.move(c, wx, k)
		g.bInOrder[d] = true
	}
}

// movePos adjusts a placement index for the detach that precedes a move: when
// the node already sits under the destination parent left of the slot,
// detaching shifts the slot one to the left.
func (g *scriptGenerator) movePos(c, parent, k int) int {
	if g.w.nodes[c].parent != parent {
		return k
	}
	for i, ch := range g.w.nodes[parent].children {
		if ch == c {
			if i < k {
				return k - 1
			}
			return k
		}
	}
	return k
}

// findPos determines the working-copy child index for placing the partner of
// x: one past the partner of the rightmost in-order left sibling of x, or 0
// when no such sibling exists.
func (g *scriptGenerator) findPos(x tree.NodeID) int {
	y := g.b.Node(x).Parent
	if y == tree.InvalidNode {
		return 0
	}
	siblings := g.b.Node(y).Children

	for _, c := range siblings {
		if g.bInOrder[c] {
			if c == x {
				return 0
			}
			break
		}
	}

	v := tree.InvalidNode
	for _, c := range siblings {
		if c == x {
			break
		}
		if g.bInOrder[c] {
			v = c
		}
	}
	if v == tree.InvalidNode {
		return 0
	}

	u := g.w.byB[v]
	up := g.w.nodes[u].parent
	for i, c := range g.w.nodes[up].children {
		if c == u {
			return i + 1
		}
	}
	return 0
}

// deleteUnmatched emits DELETE ops in postorder for working-copy nodes with
// no B counterpart, so no op ever targets a node that still has children.
func (g *scriptGenerator) deleteUnmatched(idx int) {
	// Children slice shrinks while deleting, so walk a copy.
	children := make([]int, len(g.w.nodes[idx].children))
	copy(children, g.w.nodes[idx].children)
	for _, c := range children {
		g.deleteUnmatched(c)
	}

	n := &g.w.nodes[idx]
	if idx != g.w.root && n.bID == tree.InvalidNode {
		g.ops = append(g.ops, EditOp{
			Kind:   OpDelete,
			Node:   n.aID,
			To:     tree.InvalidNode,
			Parent: tree.InvalidNode,
		})
		g.w.remove(idx)
	}
}

type lcsPair struct {
	c int
	d tree.NodeID
}

// lcsPairs computes the longest common subsequence of two child sequences
// under the given equality predicate.
func lcsPairs(s1 []int, s2 []tree.NodeID, eq func(int, tree.NodeID) bool) []lcsPair {
	n, m := len(s1), len(s2)
	if n == 0 || m == 0 {
		return nil
	}
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if eq(s1[i], s2[j]) {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}
	var out []lcsPair
	for i, j := 0, 0; i < n && j < m; {
		switch {
		case eq(s1[i], s2[j]):
			out = append(out, lcsPair{c: s1[i], d: s2[j]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			i++
		default:
			j++
		}
	}
	return out
}

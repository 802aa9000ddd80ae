package diff

import (
	"sort"

	"github.com/ludo-technologies/treediff/internal/tree"
)

// bottomUpMatch pairs remaining container nodes by similarity of the
// matches already established among their descendants. A nodes are visited
// in postorder so that descendant matches exist before a parent is scored.
func bottomUpMatch(a, b *tree.Tree, cfg MatchingConfig, m *Matching) {
	bByKind := candidatesByKind(b)

	for _, aID := range a.Postorder() {
		if m.HasA(aID) {
			continue
		}
		an := a.Node(aID)

		// The roots anchor the whole alignment; pair them whenever their
		// kinds agree, even without matched descendants yet.
		if aID == a.Root() && !m.HasB(b.Root()) && b.Node(b.Root()).Kind == an.Kind {
			m.Add(aID, b.Root())
			recoverChildren(a, b, aID, b.Root(), cfg.MinDice, m)
			continue
		}

		if an.IsLeaf() || !hasMatchedDescendant(a, aID, m) {
			continue
		}

		bID := bestCandidate(a, b, aID, bByKind[an.Kind], cfg.MinDice, m)
		if bID == tree.InvalidNode {
			continue
		}
		m.Add(aID, bID)
		recoverChildren(a, b, aID, bID, cfg.MinDice, m)
	}
}

// candidatesByKind indexes all B nodes by kind, each list in preorder rank
// order for deterministic candidate iteration.
func candidatesByKind(b *tree.Tree) map[string][]tree.NodeID {
	idx := make(map[string][]tree.NodeID)
	for _, id := range b.Preorder() {
		kind := b.Node(id).Kind
		idx[kind] = append(idx[kind], id)
	}
	for kind := range idx {
		ids := idx[kind]
		sort.Slice(ids, func(i, j int) bool {
			return b.PreorderRank(ids[i]) < b.PreorderRank(ids[j])
		})
	}
	return idx
}

func hasMatchedDescendant(a *tree.Tree, id tree.NodeID, m *Matching) bool {
	for _, d := range a.Descendants(id) {
		if m.HasA(d) {
			return true
		}
	}
	return false
}

// bestCandidate returns the unmatched B node of the same kind maximizing the
// Dice coefficient against aID, or InvalidNode when no candidate reaches the
// threshold. Ties break toward the candidate earliest in B preorder.
func bestCandidate(a, b *tree.Tree, aID tree.NodeID, candidates []tree.NodeID, minDice float64, m *Matching) tree.NodeID {
	best := tree.InvalidNode
	bestScore := 0.0
	for _, bID := range candidates {
		if m.HasB(bID) {
			continue
		}
		score := diceCoefficient(a, b, aID, bID, m)
		if score >= minDice && score > bestScore {
			best = bID
			bestScore = score
		}
	}
	return best
}

// diceCoefficient measures how many already-matched descendants two nodes
// share: 2*common / (|desc(x)| + |desc(y)|), over proper descendants.
func diceCoefficient(a, b *tree.Tree, aID, bID tree.NodeID, m *Matching) float64 {
	descA := a.Descendants(aID)
	descB := b.Descendants(bID)
	if len(descA)+len(descB) == 0 {
		return 0
	}

	inB := make(map[tree.NodeID]struct{}, len(descB))
	for _, d := range descB {
		inB[d] = struct{}{}
	}
	common := 0
	for _, d := range descA {
		if mb := m.GetB(d); mb != tree.InvalidNode {
			if _, ok := inB[mb]; ok {
				common++
			}
		}
	}
	return 2.0 * float64(common) / float64(len(descA)+len(descB))
}

// recoverChildren runs a finer pass over the direct children of a freshly
// matched pair to recover matches the coarse pass missed. Container children
// are scored by Dice against the threshold; leaf children pair up when kind
// and label agree, preferring a candidate with an equal value so that a
// changed leaf becomes an update rather than a delete/insert pair. The pass
// goes one level deep only.
func recoverChildren(a, b *tree.Tree, aID, bID tree.NodeID, minDice float64, m *Matching) {
	an, bn := a.Node(aID), b.Node(bID)
	for _, ca := range an.Children {
		if m.HasA(ca) {
			continue
		}
		can := a.Node(ca)
		if can.IsLeaf() {
			recoverLeaf(a, b, ca, bn.Children, m)
			continue
		}
		best := tree.InvalidNode
		bestScore := 0.0
		for _, cb := range bn.Children {
			if m.HasB(cb) || b.Node(cb).Kind != can.Kind {
				continue
			}
			score := diceCoefficient(a, b, ca, cb, m)
			if score >= minDice && score > bestScore {
				best = cb
				bestScore = score
			}
		}
		if best != tree.InvalidNode {
			m.Add(ca, best)
		}
	}
}

func recoverLeaf(a, b *tree.Tree, ca tree.NodeID, candidates []tree.NodeID, m *Matching) {
	can := a.Node(ca)
	fallback := tree.InvalidNode
	for _, cb := range candidates {
		if m.HasB(cb) {
			continue
		}
		cbn := b.Node(cb)
		if !cbn.IsLeaf() || cbn.Kind != can.Kind || cbn.Label != can.Label {
			continue
		}
		if cbn.Value == can.Value {
			m.Add(ca, cb)
			return
		}
		if fallback == tree.InvalidNode {
			fallback = cb
		}
	}
	if fallback != tree.InvalidNode {
		m.Add(ca, fallback)
	}
}

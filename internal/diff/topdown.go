package diff

import (
	"sort"

	"github.com/ludo-technologies/treediff/internal/tree"
)

// topDownMatch finds maximal identical subtrees by structural hash and
// matches them together with all of their descendants. Buckets are processed
// tallest subtree first; buckets below cfg.MinHeight are left to the
// bottom-up phase. Iteration order is fixed by (height, preorder rank) so
// repeated runs produce the same matching.
func topDownMatch(a, b *tree.Tree, cfg MatchingConfig, m *Matching) {
	type bucket struct {
		height int
		aRank  int // lowest preorder rank among A members, for ordering
		aIDs   []tree.NodeID
		bIDs   []tree.NodeID
	}

	buckets := make(map[uint64]*bucket)
	for _, id := range a.Preorder() {
		n := a.Node(id)
		if n.Height < cfg.MinHeight {
			continue
		}
		bk := buckets[n.Hash]
		if bk == nil {
			bk = &bucket{height: n.Height, aRank: a.PreorderRank(id)}
			buckets[n.Hash] = bk
		}
		bk.aIDs = append(bk.aIDs, id)
	}
	for _, id := range b.Preorder() {
		n := b.Node(id)
		if n.Height < cfg.MinHeight {
			continue
		}
		bk := buckets[n.Hash]
		if bk == nil {
			// No A node shares this hash; nothing to match.
			continue
		}
		bk.bIDs = append(bk.bIDs, id)
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		if len(bk.aIDs) > 0 && len(bk.bIDs) > 0 {
			ordered = append(ordered, bk)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].height != ordered[j].height {
			return ordered[i].height > ordered[j].height
		}
		return ordered[i].aRank < ordered[j].aRank
	})

	for _, bk := range ordered {
		// Preorder traversal already yields candidates in preorder rank
		// order, so the first unmatched entry is the deterministic pick.
		ai, bi := 0, 0
		for {
			for ai < len(bk.aIDs) && m.HasA(bk.aIDs[ai]) {
				ai++
			}
			for bi < len(bk.bIDs) && m.HasB(bk.bIDs[bi]) {
				bi++
			}
			if ai >= len(bk.aIDs) || bi >= len(bk.bIDs) {
				break
			}
			aID, bID := bk.aIDs[ai], bk.bIDs[bi]
			if a.Node(aID).Kind != b.Node(bID).Kind {
				// Hash equality implies kind equality; a mismatch here
				// means a hash collision, which we refuse to match.
				bi++
				continue
			}
			matchSubtrees(a, b, aID, bID, m)
		}
	}
}

// matchSubtrees records a match for two hash-identical subtrees. The
// descendant alignment is fixed because identical hashes imply identical
// structure, so children are paired positionally.
func matchSubtrees(a, b *tree.Tree, aID, bID tree.NodeID, m *Matching) {
	m.Add(aID, bID)
	an, bn := a.Node(aID), b.Node(bID)
	for i := range an.Children {
		matchSubtrees(a, b, an.Children[i], bn.Children[i], m)
	}
}

// Package diff implements the tree differencing engine: hash-based top-down
// matching, similarity-based bottom-up matching, Chawathe-style edit script
// generation over a working copy, and edit script simplification.
package diff

import (
	"sort"

	"github.com/ludo-technologies/treediff/internal/tree"
)

// MatchingConfig holds the two matcher tunables. Both trade recall of
// matches against false-positive matches.
type MatchingConfig struct {
	// MinHeight is the minimum subtree height considered by the top-down
	// matcher. Shorter subtrees are left for the bottom-up phase.
	MinHeight int

	// MinDice is the minimum Dice similarity the bottom-up matcher accepts
	// when pairing container nodes.
	MinDice float64
}

// DefaultMatchingConfig returns the thresholds from the GumTree literature.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		MinHeight: DefaultMinHeight,
		MinDice:   DefaultMinDice,
	}
}

// Default matcher thresholds (Falleri et al., ASE 2014).
const (
	DefaultMinHeight = 2
	DefaultMinDice   = 0.5
)

// Matching is a partial bijection between the node IDs of tree A and tree B.
// No ID appears as a source or as a target more than once.
type Matching struct {
	aToB map[tree.NodeID]tree.NodeID
	bToA map[tree.NodeID]tree.NodeID
}

// NewMatching creates an empty matching.
func NewMatching() *Matching {
	return &Matching{
		aToB: make(map[tree.NodeID]tree.NodeID),
		bToA: make(map[tree.NodeID]tree.NodeID),
	}
}

// Add records a match between a node of A and a node of B. Adding a node
// that is already matched on either side is a programming error and panics.
func (m *Matching) Add(a, b tree.NodeID) {
	if _, ok := m.aToB[a]; ok {
		panic("diff: node already matched on the A side")
	}
	if _, ok := m.bToA[b]; ok {
		panic("diff: node already matched on the B side")
	}
	m.aToB[a] = b
	m.bToA[b] = a
}

// HasA reports whether the A-side node is matched.
func (m *Matching) HasA(a tree.NodeID) bool {
	_, ok := m.aToB[a]
	return ok
}

// HasB reports whether the B-side node is matched.
func (m *Matching) HasB(b tree.NodeID) bool {
	_, ok := m.bToA[b]
	return ok
}

// GetB returns the B-side match of an A node, or InvalidNode.
func (m *Matching) GetB(a tree.NodeID) tree.NodeID {
	if b, ok := m.aToB[a]; ok {
		return b
	}
	return tree.InvalidNode
}

// GetA returns the A-side match of a B node, or InvalidNode.
func (m *Matching) GetA(b tree.NodeID) tree.NodeID {
	if a, ok := m.bToA[b]; ok {
		return a
	}
	return tree.InvalidNode
}

// Len returns the number of matched pairs.
func (m *Matching) Len() int {
	return len(m.aToB)
}

// Pair is one matched (A, B) node pair.
type Pair struct {
	A tree.NodeID
	B tree.NodeID
}

// Pairs returns all matched pairs ordered by the A-side node ID so that
// iteration is deterministic.
func (m *Matching) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.aToB))
	for a, b := range m.aToB {
		pairs = append(pairs, Pair{A: a, B: b})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].A < pairs[j].A })
	return pairs
}

// ComputeMatching runs the top-down and bottom-up matchers and returns the
// resulting partial bijection. The trees are read-only inputs.
func ComputeMatching(a, b *tree.Tree, cfg MatchingConfig) *Matching {
	m := NewMatching()
	topDownMatch(a, b, cfg, m)
	bottomUpMatch(a, b, cfg, m)
	return m
}

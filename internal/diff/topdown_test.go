package diff

import (
	"testing"

	"github.com/ludo-technologies/treediff/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopDownMatchesIdenticalTreesEntirely(t *testing.T) {
	a := build(t, n("doc", "root", nil, block("f1"), block("f2")))
	b := build(t, n("doc", "root", nil, block("f1"), block("f2")))

	m := NewMatching()
	topDownMatch(a, b, DefaultMatchingConfig(), m)

	// Trees are identical and tall enough, so the root bucket matches
	// everything in one recursive sweep.
	assert.Equal(t, a.Len(), m.Len())
	for _, id := range a.Preorder() {
		require.True(t, m.HasA(id))
		assert.Equal(t, a.Node(id).Hash, b.Node(m.GetB(id)).Hash)
	}
}

func TestTopDownMatchesRelocatedSubtree(t *testing.T) {
	a := build(t, n("doc", "root", nil,
		n("section", "s1", nil, block("moved")),
		n("section", "s2", nil)))
	b := build(t, n("doc", "root", nil,
		n("section", "s1", nil),
		n("section", "s2", nil, block("moved"))))

	m := NewMatching()
	topDownMatch(a, b, DefaultMatchingConfig(), m)

	aBlock := findByLabel(t, a, "moved")
	bBlock := findByLabel(t, b, "moved")
	assert.Equal(t, bBlock, m.GetB(aBlock))

	// All three block nodes are matched, nothing else is (the differing
	// sections hash apart).
	assert.Equal(t, 3, m.Len())
	aSpan := findByLabel(t, a, "moved-span")
	assert.Equal(t, findByLabel(t, b, "moved-span"), m.GetB(aSpan))
	aText := findByLabel(t, a, "moved-text")
	assert.Equal(t, findByLabel(t, b, "moved-text"), m.GetB(aText))
}

func TestTopDownRespectsMinHeight(t *testing.T) {
	// The shared subtree is only height 1, below the default cutoff.
	a := build(t, n("doc", "rootA", nil,
		n("section", "s", nil, n("scalar", "x", 1))))
	b := build(t, n("doc", "rootB", nil,
		n("section", "s", nil, n("scalar", "x", 1))))

	m := NewMatching()
	topDownMatch(a, b, MatchingConfig{MinHeight: 2, MinDice: 0.5}, m)
	assert.Equal(t, 0, m.Len())

	// Lowering the cutoff lets the section bucket match.
	m = NewMatching()
	topDownMatch(a, b, MatchingConfig{MinHeight: 1, MinDice: 0.5}, m)
	aSec := findByLabel(t, a, "s")
	assert.Equal(t, findByLabel(t, b, "s"), m.GetB(aSec))
}

func TestTopDownDuplicateSubtreesPairInPreorder(t *testing.T) {
	// Two identical blocks on each side; the first unmatched A candidate
	// pairs with the first unmatched B candidate.
	a := build(t, n("doc", "root", nil, block("dup"), block("dup")))
	b := build(t, n("doc", "root", nil, block("dup"), block("dup")))

	m := NewMatching()
	topDownMatch(a, b, DefaultMatchingConfig(), m)

	// Identical roots, so everything matches positionally.
	root := a.Node(a.Root())
	first, second := root.Children[0], root.Children[1]
	bRoot := b.Node(b.Root())
	assert.Equal(t, bRoot.Children[0], m.GetB(first))
	assert.Equal(t, bRoot.Children[1], m.GetB(second))
}

func TestTopDownIsDeterministic(t *testing.T) {
	a := build(t, n("doc", "root", nil, block("f1"), block("f2"), block("f1x")))
	b := build(t, n("doc", "other", nil, block("f2"), block("f1"), block("f1x")))

	ref := NewMatching()
	topDownMatch(a, b, DefaultMatchingConfig(), ref)
	for i := 0; i < 10; i++ {
		m := NewMatching()
		topDownMatch(a, b, DefaultMatchingConfig(), m)
		assert.Equal(t, ref.Pairs(), m.Pairs())
	}
}

func TestTopDownKindFilter(t *testing.T) {
	// Hash includes kind, so subtrees differing only in kind never share a
	// bucket in the first place.
	a := build(t, n("doc", "root", nil,
		n("section", "s", nil, n("span", "sp", nil, n("scalar", "x", 1)))))
	b := build(t, n("doc", "root", nil,
		n("chapter", "s", nil, n("span", "sp", nil, n("scalar", "x", 1)))))

	m := NewMatching()
	topDownMatch(a, b, DefaultMatchingConfig(), m)
	aSec := findByLabel(t, a, "s")
	assert.Equal(t, tree.InvalidNode, m.GetB(aSec))
}

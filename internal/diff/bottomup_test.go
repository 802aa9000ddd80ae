package diff

import (
	"testing"

	"github.com/ludo-technologies/treediff/internal/tree"
	"github.com/stretchr/testify/assert"
)

func TestBottomUpMatchesContainersByDice(t *testing.T) {
	a := build(t, n("doc", "rootA", nil,
		n("section", "sA", nil, block("f1"), block("f2"), n("scalar", "extraA", 1)),
		n("section", "tA", nil, block("g1"), block("g2"))))
	b := build(t, n("doc", "rootB", nil,
		n("section", "sB", nil, block("f1"), block("f2")),
		n("section", "tB", nil, block("g1"), block("g2"), n("scalar", "extraB", 2))))

	m := ComputeMatching(a, b, DefaultMatchingConfig())

	// The blocks anchor the sections: sA shares f-blocks with sB only.
	assert.Equal(t, findByLabel(t, b, "sB"), m.GetB(findByLabel(t, a, "sA")))
	assert.Equal(t, findByLabel(t, b, "tB"), m.GetB(findByLabel(t, a, "tA")))
}

func TestBottomUpRespectsDiceThreshold(t *testing.T) {
	// Only the block survives on the B side; dice = 2*3/(6+3) ≈ 0.67.
	a := build(t, n("doc", "rootA", nil,
		n("section", "sA", nil, block("kept"), n("scalar", "a1", 1), n("scalar", "a2", 2), n("scalar", "a3", 3))))
	b := build(t, n("doc", "rootB", nil,
		n("section", "sB", nil, block("kept"))))

	high := ComputeMatching(a, b, MatchingConfig{MinHeight: 2, MinDice: 0.9})
	assert.Equal(t, tree.InvalidNode, high.GetB(findByLabel(t, a, "sA")))

	low := ComputeMatching(a, b, MatchingConfig{MinHeight: 2, MinDice: 0.3})
	assert.Equal(t, findByLabel(t, b, "sB"), low.GetB(findByLabel(t, a, "sA")))
}

func TestBottomUpKindIsStrictFilter(t *testing.T) {
	a := build(t, n("doc", "rootA", nil,
		n("section", "sA", nil, block("f1"), block("f2"))))
	b := build(t, n("doc", "rootB", nil,
		n("chapter", "sB", nil, block("f1"), block("f2"))))

	m := ComputeMatching(a, b, DefaultMatchingConfig())
	// Perfect dice overlap, wrong kind: no match.
	assert.Equal(t, tree.InvalidNode, m.GetB(findByLabel(t, a, "sA")))
}

func TestBottomUpForceMatchesSameKindRoots(t *testing.T) {
	a := build(t, n("doc", "root", nil, n("scalar", "x", "hello")))
	b := build(t, n("doc", "root", nil, n("scalar", "x", "world")))

	m := ComputeMatching(a, b, DefaultMatchingConfig())
	assert.Equal(t, b.Root(), m.GetB(a.Root()))
}

func TestBottomUpLeavesRootsOfDifferentKindsUnmatched(t *testing.T) {
	a := build(t, n("doc", "root", nil, n("scalar", "x", 1)))
	b := build(t, n("array", "root", nil, n("scalar", "x", 1)))

	m := ComputeMatching(a, b, DefaultMatchingConfig())
	assert.Equal(t, tree.InvalidNode, m.GetB(a.Root()))
}

func TestBottomUpRecoversLeafChildren(t *testing.T) {
	a := build(t, n("doc", "root", nil,
		n("scalar", "name", "alice"),
		n("scalar", "age", 30)))
	b := build(t, n("doc", "root", nil,
		n("scalar", "name", "alice"),
		n("scalar", "age", 31)))

	m := ComputeMatching(a, b, DefaultMatchingConfig())

	assert.Equal(t, findByLabel(t, b, "name"), m.GetB(findByLabel(t, a, "name")))
	// Same label, changed value: still recovered so the change becomes an
	// update instead of a delete/insert pair.
	assert.Equal(t, findByLabel(t, b, "age"), m.GetB(findByLabel(t, a, "age")))
}

func TestBottomUpLeafRecoveryPrefersEqualValue(t *testing.T) {
	a := build(t, n("doc", "root", nil,
		n("scalar", "item", "one"),
		n("scalar", "item", "two")))
	b := build(t, n("doc", "root", nil,
		n("scalar", "item", "two"),
		n("scalar", "item", "one")))

	m := ComputeMatching(a, b, DefaultMatchingConfig())

	aOne := a.Node(a.Root()).Children[0]
	aTwo := a.Node(a.Root()).Children[1]
	bTwo := b.Node(b.Root()).Children[0]
	bOne := b.Node(b.Root()).Children[1]
	assert.Equal(t, bOne, m.GetB(aOne))
	assert.Equal(t, bTwo, m.GetB(aTwo))
}

func TestDiceCoefficient(t *testing.T) {
	a := build(t, n("doc", "rootA", nil,
		n("section", "sA", nil, block("f1"), block("f2"))))
	b := build(t, n("doc", "rootB", nil,
		n("section", "sB", nil, block("f1"), block("f2"))))

	m := NewMatching()
	topDownMatch(a, b, DefaultMatchingConfig(), m)

	sA := findByLabel(t, a, "sA")
	sB := findByLabel(t, b, "sB")
	// All six descendants matched on both sides.
	assert.InDelta(t, 1.0, diceCoefficient(a, b, sA, sB, m), 1e-9)

	empty := NewMatching()
	assert.InDelta(t, 0.0, diceCoefficient(a, b, sA, sB, empty), 1e-9)
}

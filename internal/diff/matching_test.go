package diff

import (
	"testing"

	"github.com/ludo-technologies/treediff/internal/tree"
	"github.com/stretchr/testify/assert"
)

func TestMatchingBijection(t *testing.T) {
	m := NewMatching()
	m.Add(1, 10)
	m.Add(2, 20)

	assert.True(t, m.HasA(1))
	assert.True(t, m.HasB(20))
	assert.False(t, m.HasA(3))
	assert.Equal(t, tree.NodeID(10), m.GetB(1))
	assert.Equal(t, tree.NodeID(2), m.GetA(20))
	assert.Equal(t, tree.InvalidNode, m.GetB(99))
	assert.Equal(t, 2, m.Len())
}

func TestMatchingRejectsDuplicates(t *testing.T) {
	m := NewMatching()
	m.Add(1, 10)

	assert.Panics(t, func() { m.Add(1, 20) }, "A side reused")
	assert.Panics(t, func() { m.Add(2, 10) }, "B side reused")
}

func TestMatchingPairsDeterministic(t *testing.T) {
	m := NewMatching()
	m.Add(5, 50)
	m.Add(1, 10)
	m.Add(3, 30)

	pairs := m.Pairs()
	assert.Equal(t, []Pair{{A: 1, B: 10}, {A: 3, B: 30}, {A: 5, B: 50}}, pairs)
}

func TestDefaultMatchingConfig(t *testing.T) {
	cfg := DefaultMatchingConfig()
	assert.Equal(t, 2, cfg.MinHeight)
	assert.Equal(t, 0.5, cfg.MinDice)
}

func TestComputeMatchingIsBijective(t *testing.T) {
	a := build(t, n("doc", "root", nil, block("f1"), block("f2"), n("scalar", "x", 1)))
	b := build(t, n("doc", "root", nil, block("f2"), block("f1"), n("scalar", "x", 2)))

	m := ComputeMatching(a, b, DefaultMatchingConfig())

	seenB := make(map[tree.NodeID]bool)
	for _, p := range m.Pairs() {
		assert.False(t, seenB[p.B], "B node targeted twice")
		seenB[p.B] = true
		assert.Equal(t, p.A, m.GetA(p.B))
	}
}

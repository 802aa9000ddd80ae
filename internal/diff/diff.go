package diff

import (
	"github.com/ludo-technologies/treediff/internal/tree"
)

// Diff computes the simplified edit script turning tree A into tree B:
// matching, script generation and simplification composed.
func Diff(a, b *tree.Tree, cfg MatchingConfig) []EditOp {
	ops, _ := DiffWithMatching(a, b, cfg)
	return ops
}

// DiffWithMatching is Diff for callers that also need the node
// correspondence, e.g. to translate ID-based ops into paths.
func DiffWithMatching(a, b *tree.Tree, cfg MatchingConfig) ([]EditOp, *Matching) {
	m := ComputeMatching(a, b, cfg)
	ops := GenerateEditScript(a, b, m)
	return Simplify(ops, a, b), m
}

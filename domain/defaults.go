package domain

import "os"

// Matching thresholds for the two-phase tree matcher.
//
// References:
// - Falleri, J.-R., et al. (2014). Fine-grained and accurate source code differencing
const (
	// DefaultMinHeight is the minimum subtree height considered by the
	// top-down phase. Subtrees shallower than this (single nodes and flat
	// leaves at 2) are too common to anchor a matching reliably.
	DefaultMinHeight = 2

	// DefaultMinDice is the minimum dice similarity for the bottom-up
	// phase to pair two containers. 0.5 requires the candidates to share
	// at least half of their matched descendants.
	DefaultMinDice = 0.5
)

// DefaultDiffRequest returns a diff request populated with defaults
func DefaultDiffRequest() *DiffRequest {
	return &DiffRequest{
		InputKind:    InputKindDocument,
		MinHeight:    DefaultMinHeight,
		MinDice:      DefaultMinDice,
		OutputFormat: OutputFormatText,
		OutputWriter: os.Stdout,
	}
}

// DefaultDirDiffRequest returns a directory diff request populated with defaults
func DefaultDirDiffRequest() *DirDiffRequest {
	return &DirDiffRequest{
		InputKind:       InputKindDocument,
		IncludePatterns: []string{"**/*.json", "**/*.yaml", "**/*.yml"},
		MinHeight:       DefaultMinHeight,
		MinDice:         DefaultMinDice,
		OutputFormat:    OutputFormatText,
		OutputWriter:    os.Stdout,
	}
}

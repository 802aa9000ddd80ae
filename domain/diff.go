package domain

import (
	"context"
	"io"
)

// InputKind selects how input files are turned into trees
type InputKind string

const (
	// InputKindDocument parses JSON/YAML documents
	InputKindDocument InputKind = "document"
	// InputKindSource parses Python source files
	InputKindSource InputKind = "source"
)

// EditOpType represents the four edit operations
type EditOpType string

const (
	EditOpInsert EditOpType = "insert"
	EditOpDelete EditOpType = "delete"
	EditOpUpdate EditOpType = "update"
	EditOpMove   EditOpType = "move"
)

// EditOperation is the externally visible form of a single edit.
// Paths address nodes by label and child index in their own tree:
// deletes, updates and moves in the left tree, inserts in the right.
type EditOperation struct {
	Type     EditOpType `json:"type" yaml:"type"`
	Path     string     `json:"path" yaml:"path"`
	Kind     string     `json:"kind" yaml:"kind"`
	Label    string     `json:"label,omitempty" yaml:"label,omitempty"`
	OldValue string     `json:"old_value,omitempty" yaml:"old_value,omitempty"`
	NewValue string     `json:"new_value,omitempty" yaml:"new_value,omitempty"`
	// Destination of inserts and moves
	ToPath   string `json:"to_path,omitempty" yaml:"to_path,omitempty"`
	Position int    `json:"position,omitempty" yaml:"position,omitempty"`
	// Subtree marks an insert that stands for a whole new subtree
	Subtree bool `json:"subtree,omitempty" yaml:"subtree,omitempty"`
}

// DiffSummary aggregates counts over a diff result
type DiffSummary struct {
	Inserts       int `json:"inserts" yaml:"inserts"`
	Deletes       int `json:"deletes" yaml:"deletes"`
	Updates       int `json:"updates" yaml:"updates"`
	Moves         int `json:"moves" yaml:"moves"`
	TotalOps      int `json:"total_ops" yaml:"total_ops"`
	LeftNodes     int `json:"left_nodes" yaml:"left_nodes"`
	RightNodes    int `json:"right_nodes" yaml:"right_nodes"`
	MatchedNodes  int `json:"matched_nodes" yaml:"matched_nodes"`
	RawScriptSize int `json:"raw_script_size" yaml:"raw_script_size"`
}

// Identical reports whether the two trees were equal
func (s *DiffSummary) Identical() bool {
	return s.TotalOps == 0
}

// DiffRequest represents a request to diff two inputs
type DiffRequest struct {
	// Input parameters
	LeftPath  string    `json:"left_path"`
	RightPath string    `json:"right_path"`
	InputKind InputKind `json:"input_kind"`

	// Matching configuration
	MinHeight int     `json:"min_height"`
	MinDice   float64 `json:"min_dice"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	ShowRaw      bool         `json:"show_raw"`
	Verify       bool         `json:"verify"`

	// Configuration file
	ConfigPath string `json:"config_path"`
}

// DiffResponse represents the result of diffing two inputs
type DiffResponse struct {
	Operations []EditOperation `json:"operations" yaml:"operations"`
	Summary    DiffSummary     `json:"summary" yaml:"summary"`

	// Metadata
	LeftPath  string `json:"left_path" yaml:"left_path"`
	RightPath string `json:"right_path" yaml:"right_path"`
	Verified  bool   `json:"verified,omitempty" yaml:"verified,omitempty"`
	Duration  int64  `json:"duration_ms" yaml:"duration_ms"`
}

// DirDiffRequest represents a request to diff two directories of documents
type DirDiffRequest struct {
	LeftDir         string    `json:"left_dir"`
	RightDir        string    `json:"right_dir"`
	InputKind       InputKind `json:"input_kind"`
	IncludePatterns []string  `json:"include_patterns"`
	ExcludePatterns []string  `json:"exclude_patterns"`

	MinHeight int     `json:"min_height"`
	MinDice   float64 `json:"min_dice"`

	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
}

// FileDiff is the per-file result of a directory diff
type FileDiff struct {
	RelPath string       `json:"rel_path" yaml:"rel_path"`
	Status  string       `json:"status" yaml:"status"` // changed, added, removed, identical
	Summary *DiffSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Error   string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// DirDiffResponse represents the result of a directory diff
type DirDiffResponse struct {
	Files    []FileDiff `json:"files" yaml:"files"`
	Changed  int        `json:"changed" yaml:"changed"`
	Added    int        `json:"added" yaml:"added"`
	Removed  int        `json:"removed" yaml:"removed"`
	Duration int64      `json:"duration_ms" yaml:"duration_ms"`
}

// DiffService defines the interface for tree diff services
type DiffService interface {
	// Diff computes the edit script between the two inputs in the request
	Diff(ctx context.Context, req *DiffRequest) (*DiffResponse, error)
}

// DirDiffService defines the interface for directory diff services
type DirDiffService interface {
	// DiffDirs diffs matching files of two directory trees
	DiffDirs(ctx context.Context, req *DirDiffRequest) (*DirDiffResponse, error)
}

// DiffOutputFormatter defines the interface for rendering diff results
type DiffOutputFormatter interface {
	// Write renders a response in the given format
	Write(response *DiffResponse, format OutputFormat, writer io.Writer) error

	// WriteDir renders a directory diff response
	WriteDir(response *DirDiffResponse, format OutputFormat, writer io.Writer) error
}

// DiffConfigurationLoader defines the interface for loading diff configuration
type DiffConfigurationLoader interface {
	// LoadDiffConfig merges configuration from file into the request defaults
	LoadDiffConfig(configPath string) (*DiffRequest, error)

	// GetDefaultDiffConfig returns the default diff configuration
	GetDefaultDiffConfig() *DiffRequest
}

// Validate validates a diff request
func (req *DiffRequest) Validate() error {
	if req.LeftPath == "" || req.RightPath == "" {
		return NewValidationError("two input paths are required")
	}
	if req.InputKind != InputKindDocument && req.InputKind != InputKindSource {
		return NewValidationError("input_kind must be document or source")
	}
	if req.MinHeight < 0 {
		return NewValidationError("min_height must be >= 0")
	}
	if req.MinDice < 0.0 || req.MinDice > 1.0 {
		return NewValidationError("min_dice must be between 0.0 and 1.0")
	}
	if !req.OutputFormat.Valid() {
		return NewUnsupportedFormatError(string(req.OutputFormat))
	}
	return nil
}

// Validate validates a directory diff request
func (req *DirDiffRequest) Validate() error {
	if req.LeftDir == "" || req.RightDir == "" {
		return NewValidationError("two directories are required")
	}
	if req.MinHeight < 0 {
		return NewValidationError("min_height must be >= 0")
	}
	if req.MinDice < 0.0 || req.MinDice > 1.0 {
		return NewValidationError("min_dice must be between 0.0 and 1.0")
	}
	return nil
}

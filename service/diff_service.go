package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/internal/diff"
	"github.com/ludo-technologies/treediff/internal/tree"
)

// DiffServiceImpl implements the domain.DiffService interface
type DiffServiceImpl struct {
	documents *DocumentLoader
	sources   *SourceLoader
}

// NewDiffService creates a new diff service
func NewDiffService() *DiffServiceImpl {
	return &DiffServiceImpl{
		documents: NewDocumentLoader(),
		sources:   NewSourceLoader(),
	}
}

// Diff computes the edit script between the two inputs in the request
func (s *DiffServiceImpl) Diff(ctx context.Context, req *domain.DiffRequest) (*domain.DiffResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("diff request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	left, err := s.loadTree(ctx, req.InputKind, req.LeftPath)
	if err != nil {
		return nil, err
	}
	right, err := s.loadTree(ctx, req.InputKind, req.RightPath)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("diff cancelled: %w", ctx.Err())
	default:
	}

	cfg := diff.MatchingConfig{MinHeight: req.MinHeight, MinDice: req.MinDice}
	matching := diff.ComputeMatching(left, right, cfg)
	raw := diff.GenerateEditScript(left, right, matching)

	ops := raw
	if !req.ShowRaw {
		ops = diff.Simplify(raw, left, right)
	}

	response := &domain.DiffResponse{
		Operations: s.renderOps(ops, left, right),
		Summary:    summarize(ops, raw, left, right, matching),
		LeftPath:   req.LeftPath,
		RightPath:  req.RightPath,
	}

	if req.Verify {
		applied, err := diff.Apply(left, right, matching, ops)
		if err != nil {
			return nil, domain.NewDiffError("edit script failed to apply", err)
		}
		if !tree.Equal(applied, right) {
			return nil, domain.NewDiffError("applied edit script does not reproduce the right tree", nil)
		}
		response.Verified = true
	}

	response.Duration = time.Since(startTime).Milliseconds()
	return response, nil
}

func (s *DiffServiceImpl) loadTree(ctx context.Context, kind domain.InputKind, path string) (*tree.Tree, error) {
	switch kind {
	case domain.InputKindSource:
		return s.sources.LoadFile(ctx, path)
	default:
		return s.documents.LoadFile(path)
	}
}

func (s *DiffServiceImpl) renderOps(ops []diff.EditOp, left, right *tree.Tree) []domain.EditOperation {
	rendered := make([]domain.EditOperation, 0, len(ops))
	for _, op := range ops {
		rendered = append(rendered, renderOp(op, left, right))
	}
	return rendered
}

func renderOp(op diff.EditOp, left, right *tree.Tree) domain.EditOperation {
	switch op.Kind {
	case diff.OpInsert:
		n := right.Node(op.Node)
		return domain.EditOperation{
			Type:     domain.EditOpInsert,
			Path:     RenderPath(right, op.Node),
			Kind:     n.Kind,
			Label:    n.Label,
			NewValue: formatValue(n.Value),
			Position: op.Pos,
			Subtree:  op.Subtree,
		}
	case diff.OpDelete:
		n := left.Node(op.Node)
		return domain.EditOperation{
			Type:     domain.EditOpDelete,
			Path:     RenderPath(left, op.Node),
			Kind:     n.Kind,
			Label:    n.Label,
			OldValue: formatValue(n.Value),
		}
	case diff.OpUpdate:
		n := left.Node(op.Node)
		return domain.EditOperation{
			Type:     domain.EditOpUpdate,
			Path:     RenderPath(left, op.Node),
			Kind:     n.Kind,
			Label:    op.Label,
			OldValue: formatValue(n.Value),
			NewValue: formatValue(op.Value),
		}
	default:
		n := left.Node(op.Node)
		return domain.EditOperation{
			Type:     domain.EditOpMove,
			Path:     RenderPath(left, op.Node),
			Kind:     n.Kind,
			Label:    n.Label,
			ToPath:   RenderPath(right, op.To),
			Position: op.Pos,
		}
	}
}

func summarize(ops, raw []diff.EditOp, left, right *tree.Tree, m *diff.Matching) domain.DiffSummary {
	s := domain.DiffSummary{
		TotalOps:      len(ops),
		LeftNodes:     left.Len(),
		RightNodes:    right.Len(),
		MatchedNodes:  m.Len(),
		RawScriptSize: len(raw),
	}
	for _, op := range ops {
		switch op.Kind {
		case diff.OpInsert:
			s.Inserts++
		case diff.OpDelete:
			s.Deletes++
		case diff.OpUpdate:
			s.Updates++
		case diff.OpMove:
			s.Moves++
		}
	}
	return s
}

// RenderPath renders a node's position as a human readable path from the
// root: labeled steps as ".label", unlabeled ones as "[index]".
func RenderPath(t *tree.Tree, id tree.NodeID) string {
	if id == t.Root() {
		return "$"
	}

	var steps []string
	for id != t.Root() {
		n := t.Node(id)
		if n.Label != "" {
			steps = append(steps, "."+n.Label)
		} else {
			steps = append(steps, fmt.Sprintf("[%d]", t.ChildIndex(id)))
		}
		id = n.Parent
	}

	var b strings.Builder
	b.WriteString("$")
	for i := len(steps) - 1; i >= 0; i-- {
		b.WriteString(steps[i])
	}
	return b.String()
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/treediff/domain"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleDiffDocuments handles the diff_documents tool
func (h *HandlerSet) HandleDiffDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleDiff(ctx, request, domain.InputKindDocument)
}

// HandleDiffSource handles the diff_source tool
func (h *HandlerSet) HandleDiffSource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleDiff(ctx, request, domain.InputKindSource)
}

func (h *HandlerSet) handleDiff(ctx context.Context, request mcp.CallToolRequest, kind domain.InputKind) (*mcp.CallToolResult, error) {
	// Parse arguments with type assertion
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	left, ok := args["left"].(string)
	if !ok {
		return mcp.NewToolResultError("left parameter is required and must be a string"), nil
	}
	right, ok := args["right"].(string)
	if !ok {
		return mcp.NewToolResultError("right parameter is required and must be a string"), nil
	}

	// Validate paths exist
	if _, err := os.Stat(left); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", left)), nil
	}
	if _, err := os.Stat(right); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", right)), nil
	}

	req := h.buildRequest(args, kind)
	req.LeftPath = left
	req.RightPath = right

	result, err := h.deps.DiffService().Diff(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diff failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// buildRequest merges configuration defaults and tool arguments.
func (h *HandlerSet) buildRequest(args map[string]interface{}, kind domain.InputKind) *domain.DiffRequest {
	var req *domain.DiffRequest
	if cfg := h.deps.Config(); cfg != nil {
		req = cfg.ToDiffRequest()
	} else {
		req = domain.DefaultDiffRequest()
	}
	req.InputKind = kind
	req.OutputFormat = domain.OutputFormatJSON
	req.OutputWriter = io.Discard

	if mh, ok := args["min_height"].(float64); ok && mh >= 0 {
		req.MinHeight = int(mh)
	}
	if md, ok := args["min_dice"].(float64); ok {
		req.MinDice = md
	}
	if raw, ok := args["raw"].(bool); ok {
		req.ShowRaw = raw
	}
	if verify, ok := args["verify"].(bool); ok {
		req.Verify = verify
	}

	return req
}

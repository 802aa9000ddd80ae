package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all treediff MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	// Tool 1: diff_documents - Structural document diff
	s.AddTool(mcp.NewTool("diff_documents",
		mcp.WithDescription("Structurally diff two JSON or YAML documents and return the edit script (inserts, deletes, updates, moves)"),
		mcp.WithString("left",
			mcp.Required(),
			mcp.Description("Path to the left-hand document")),
		mcp.WithString("right",
			mcp.Required(),
			mcp.Description("Path to the right-hand document")),
		mcp.WithNumber("min_height",
			mcp.Description("Minimum subtree height for top-down matching (default: 2)")),
		mcp.WithNumber("min_dice",
			mcp.Description("Minimum dice similarity 0.0-1.0 for bottom-up matching (default: 0.5)")),
		mcp.WithBoolean("raw",
			mcp.Description("Return the unsimplified edit script (default: false)")),
		mcp.WithBoolean("verify",
			mcp.Description("Re-apply the script and verify it reproduces the right document (default: false)")),
	), h.HandleDiffDocuments)

	// Tool 2: diff_source - Structural Python source diff
	s.AddTool(mcp.NewTool("diff_source",
		mcp.WithDescription("Structurally diff two Python source files: moved functions report as moves, renames as updates"),
		mcp.WithString("left",
			mcp.Required(),
			mcp.Description("Path to the left-hand source file")),
		mcp.WithString("right",
			mcp.Required(),
			mcp.Description("Path to the right-hand source file")),
		mcp.WithNumber("min_height",
			mcp.Description("Minimum subtree height for top-down matching (default: 2)")),
		mcp.WithNumber("min_dice",
			mcp.Description("Minimum dice similarity 0.0-1.0 for bottom-up matching (default: 0.5)")),
		mcp.WithBoolean("raw",
			mcp.Description("Return the unsimplified edit script (default: false)")),
		mcp.WithBoolean("verify",
			mcp.Description("Re-apply the script and verify it reproduces the right file (default: false)")),
	), h.HandleDiffSource)
}

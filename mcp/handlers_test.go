package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/treediff/mcp"
)

func textFromContent(t *testing.T, content mcplib.Content) string {
	t.Helper()
	tc, ok := mcplib.AsTextContent(content)
	require.True(t, ok)
	return tc.Text
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func callTool(
	t *testing.T,
	arguments interface{},
	handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
) *mcplib.CallToolResult {
	t.Helper()
	h := mcp.NewHandlerSet(nil)

	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handlerFunc(h, context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestHandleDiffDocuments(t *testing.T) {
	type want struct {
		isError      bool
		expectPrefix string
		check        func(t *testing.T, result map[string]interface{})
	}
	tests := map[string]struct {
		arguments func(t *testing.T) interface{}
		want      want
	}{
		"invalid_arguments_format": {
			arguments: func(t *testing.T) interface{} { return "not-a-map" },
			want: want{
				isError:      true,
				expectPrefix: "invalid arguments format",
			},
		},
		"left_missing": {
			arguments: func(t *testing.T) interface{} {
				return map[string]interface{}{
					"right": writeInput(t, "right.yaml", "a: 1\n"),
				}
			},
			want: want{
				isError:      true,
				expectPrefix: "left parameter is required",
			},
		},
		"left_not_exist": {
			arguments: func(t *testing.T) interface{} {
				return map[string]interface{}{
					"left":  "/non/existing/left.yaml",
					"right": writeInput(t, "right.yaml", "a: 1\n"),
				}
			},
			want: want{
				isError:      true,
				expectPrefix: "path does not exist",
			},
		},
		"value_update": {
			arguments: func(t *testing.T) interface{} {
				return map[string]interface{}{
					"left":  writeInput(t, "left.yaml", "- one\n- two\n"),
					"right": writeInput(t, "right.yaml", "- one\n- three\n"),
				}
			},
			want: want{
				check: func(t *testing.T, result map[string]interface{}) {
					summary, ok := result["summary"].(map[string]interface{})
					require.True(t, ok)
					assert.Equal(t, float64(1), summary["updates"])
					assert.Equal(t, float64(1), summary["total_ops"])
				},
			},
		},
		"identical_documents": {
			arguments: func(t *testing.T) interface{} {
				doc := "name: hello\nitems:\n  - a\n  - b\n"
				return map[string]interface{}{
					"left":  writeInput(t, "left.yaml", doc),
					"right": writeInput(t, "right.yaml", doc),
				}
			},
			want: want{
				check: func(t *testing.T, result map[string]interface{}) {
					summary, ok := result["summary"].(map[string]interface{})
					require.True(t, ok)
					assert.Equal(t, float64(0), summary["total_ops"])
				},
			},
		},
		"verify_round_trip": {
			arguments: func(t *testing.T) interface{} {
				return map[string]interface{}{
					"left":   writeInput(t, "left.yaml", "- one\n- two\n"),
					"right":  writeInput(t, "right.yaml", "- two\n- one\n- extra\n"),
					"verify": true,
				}
			},
			want: want{
				check: func(t *testing.T, result map[string]interface{}) {
					assert.Equal(t, true, result["verified"])
				},
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := callTool(t, tc.arguments(t), (*mcp.HandlerSet).HandleDiffDocuments)

			require.Equal(t, tc.want.isError, res.IsError)
			require.Greater(t, len(res.Content), 0)
			text := textFromContent(t, res.Content[0])
			if tc.want.expectPrefix != "" {
				if !strings.HasPrefix(text, tc.want.expectPrefix) {
					t.Fatalf("error text %q does not start with %q", text, tc.want.expectPrefix)
				}
			}
			if tc.want.check != nil {
				var result map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				tc.want.check(t, result)
			}
		})
	}
}

func TestHandleDiffSource(t *testing.T) {
	left := writeInput(t, "left.py", "def add(a, b):\n    return a + b\n")
	right := writeInput(t, "right.py", "def total(a, b):\n    return a + b\n")

	res := callTool(t, map[string]interface{}{
		"left":  left,
		"right": right,
	}, (*mcp.HandlerSet).HandleDiffSource)

	require.False(t, res.IsError)
	text := textFromContent(t, res.Content[0])

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	summary, ok := result["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Greater(t, summary["total_ops"], float64(0))
}

func TestHandleDiffDocumentsThresholdArguments(t *testing.T) {
	left := writeInput(t, "left.yaml", "- one\n- two\n")
	right := writeInput(t, "right.yaml", "- one\n- three\n")

	res := callTool(t, map[string]interface{}{
		"left":       left,
		"right":      right,
		"min_height": float64(0),
		"min_dice":   float64(0.3),
		"raw":        true,
	}, (*mcp.HandlerSet).HandleDiffDocuments)

	require.False(t, res.IsError)
	text := textFromContent(t, res.Content[0])

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Contains(t, result, "operations")
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cdkparity/cdkparity/internal/adapters/outbound/config"
	"github.com/cdkparity/cdkparity/internal/adapters/outbound/discovery"
	"github.com/cdkparity/cdkparity/internal/domain"
	"github.com/cdkparity/cdkparity/internal/domain/naming"
	"github.com/cdkparity/cdkparity/internal/domain/template"
)

// registerTools registers all cdkparity MCP tools on the given server.
func registerTools(s *server.MCPServer, root string) {
	s.AddTool(
		mcplib.NewTool("cdkparity_list_examples",
			mcplib.WithDescription("List the discovered TypeScript and Python examples under the configured examples root, as JSON"),
			mcplib.WithString("filter",
				mcplib.Description("Comma-separated example names to include (default: all)"),
			),
		),
		handleListExamples(root),
	)

	s.AddTool(
		mcplib.NewTool("cdkparity_compare",
			mcplib.WithDescription("Compare two template documents structurally; returns matched flag and unified diff"),
			mcplib.WithString("a", mcplib.Required(), mcplib.Description("First template document (raw JSON text)")),
			mcplib.WithString("b", mcplib.Required(), mcplib.Description("Second template document (raw JSON text)")),
		),
		handleCompare(),
	)

	s.AddTool(
		mcplib.NewTool("cdkparity_report",
			mcplib.WithDescription("Read a saved run report (written with --report-file) and return it as JSON"),
			mcplib.WithString("file", mcplib.Required(), mcplib.Description("Path to the run report JSON file")),
		),
		handleReport(),
	)
}

func handleListExamples(root string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := config.New().Load(root)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		var filter []string
		if raw := request.GetString("filter", ""); raw != "" {
			filter = splitCommaList(raw)
		}

		ts, py, err := discovery.New().Discover(root, cfg, filter)
		if err != nil {
			return errorResult(fmt.Sprintf("discovery failed: %v", err)), nil
		}

		return jsonResult(map[string][]exampleListing{
			"typescript": toListings(ts),
			"python":     toListings(py),
		})
	}
}

type exampleListing struct {
	Name      string `json:"name"`
	RelPath   string `json:"rel_path"`
	StackName string `json:"stack_name"`
}

func toListings(refs []domain.ExampleRef) []exampleListing {
	out := make([]exampleListing, 0, len(refs))
	for _, ref := range refs {
		out = append(out, exampleListing{
			Name:      ref.Name,
			RelPath:   ref.RelPath,
			StackName: naming.StackName(ref.Name),
		})
	}
	return out
}

func handleCompare() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		a, err := request.RequireString("a")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		b, err := request.RequireString("b")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		matched, diff := template.Compare(a, b, "a", "b")
		return jsonResult(map[string]any{
			"matched": matched,
			"diff":    diff,
		})
	}
}

func handleReport() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return errorResult(fmt.Sprintf("reading report: %v", err)), nil
		}

		var report domain.RunReport
		if err := json.Unmarshal(data, &report); err != nil {
			return errorResult(fmt.Sprintf("parsing report: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func splitCommaList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewParityMCPServer creates a new MCP server with the cdkparity tools
// registered. The root is the examples root directory.
func NewParityMCPServer(root string) *server.MCPServer {
	s := server.NewMCPServer(
		"cdkparity",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, root)

	return s
}

package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/cdkparity/cdkparity/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the cdkparity MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start cdkparity MCP server (stdio)",
		Long:  "Start the cdkparity MCP server using stdio transport. This lets AI coding assistants list examples, compare templates and read saved run reports.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" {
				root = "."
			}
			s := mcpadapter.NewParityMCPServer(root)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&root, "path", "", "Examples root (defaults to current working directory)")

	return cmd
}

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	specenvmcp "github.com/gorewood/specenv/internal/mcp"
	"github.com/gorewood/specenv/internal/workspace"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run specenv as a Model Context Protocol (MCP) server over stdio.

Each tool call resolves the environment afresh from the server's working
directory, so start the server from inside the repository.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "specenv": {
        "command": "specenv",
        "args": ["serve"]
      }
    }
  }

Available tools: feature_paths, resolve_environment, create_prp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries the protocol; diagnostics must stay on stderr.
			printer := newPrinter(cmd)
			factory := func() *workspace.Resolver {
				return newResolver(cmd, printer)
			}
			server := specenvmcp.NewServer(buildVersion(), factory)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

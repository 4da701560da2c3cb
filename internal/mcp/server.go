// Package mcp provides a Model Context Protocol server for specenv.
// It exposes feature resolution and PRP materialization as MCP tools so an
// agent can ask for paths instead of shelling out to the CLI.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/specenv/internal/workspace"
)

// ResolverFactory returns a fresh Resolver for one tool call.
type ResolverFactory func() *workspace.Resolver

// NewServer creates an MCP server with all specenv tools registered.
func NewServer(version string, newResolver ResolverFactory) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "specenv",
		Version: version,
	}, nil)
	registerTools(server, newResolver)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for tools that never write.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that create files or refs.
func writeAnnotations(destructive bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(destructive),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, newResolver ResolverFactory) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "feature_paths",
		Description: "Locate the repository root, current feature and the seven planning artifact paths (spec, plan, tasks, research, data model, contracts, quickstart) with their existence on disk. Writes nothing.",
		Annotations: readOnlyAnnotations(),
	}, handleFeaturePaths(newResolver))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_environment",
		Description: "Resolve the full environment for a validate or cleanup run: artifact paths, available tools, report path. Cleanup mode refuses a dirty working tree and creates a cleanup-backup-<timestamp> branch.",
		Annotations: writeAnnotations(false),
	}, handleResolveEnvironment(newResolver))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_prp",
		Description: "Materialize the PRP template for the current (or given) feature into prps/<feature>.md, overwriting any existing file.",
		Annotations: writeAnnotations(true),
	}, handleCreatePRP(newResolver))
}

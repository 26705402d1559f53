// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the OpenAPI upgrader as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/erraggy/oasupgrade"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasupgrade MCP server. Upgrades Swagger 2.0 and OpenAPI 3.0 documents to OpenAPI 3.0 or 3.1 and detects document versions.

Configuration: All defaults are configurable via OASUPGRADE_* environment variables set in your MCP client config.

Key settings:
- OASUPGRADE_DEFAULT_TARGET (default: latest) - target version when a call leaves target empty (3.0 or 3.1)
- OASUPGRADE_MAX_INLINE_SIZE (default: 10485760) - largest accepted inline document, in bytes
- OASUPGRADE_INCLUDE_INFO (default: true) - include informational issues in upgrade output`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	cfg = loadConfig()
	slog.Debug("mcp server starting", "default_target", cfg.DefaultTarget, "max_inline_size", cfg.MaxInlineSize)

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasupgrade", Version: oasupgrade.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "upgrade",
		Description: "Upgrade a Swagger 2.0 or OpenAPI 3.0 document to OpenAPI 3.0 or 3.1. Target defaults to the latest supported version (configurable via OASUPGRADE_DEFAULT_TARGET). Returns the steps applied, upgrade issues with JSON path locations, and the upgraded document in its source format. Use output to write to a file instead of returning inline.",
	}, handleUpgrade)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_version",
		Description: "Detect the OpenAPI version of a document without changing it. Returns the version series (2.0, 3.0, 3.1, 3.2), the raw version string and the source format.",
	}, handleDetectVersion)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

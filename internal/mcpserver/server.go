// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes dataresolver capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/dataresolver"
)

const serverInstructions = `dataresolver MCP server: resolves dotted data paths (such as uid.entity.name.value) against typed data described by a schema document.

Inputs: every tool takes a schema document (definitions keyed by type name) as inline content or a file. resolve also takes an entities document (entities keyed by type, then id) or a single data document.

Configuration: All defaults are configurable via DATARESOLVER_* environment variables set in your MCP client config.

Key settings:
- DATARESOLVER_PATHS_LIMIT (default: 100) - default result limit for list_paths
- DATARESOLVER_VALUES_LIMIT (default: 100) - default result limit for resolve
- DATARESOLVER_MAX_DEPTH (default: 8) - default list_paths depth
- DATARESOLVER_MAX_CONTENT_SIZE (default: 10 MiB) - maximum document size
- DATARESOLVER_CACHE_ENABLED (default: true) - disable document caching entirely
- DATARESOLVER_CACHE_TTL (default: 15m) - cache TTL for parsed documents

Caching: Parsed schema and entities documents are cached per session. File entries use path+mtime as key (auto-invalidated on change); inline content is keyed by hash.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		schemaCache.startSweeper(ctx, cfg.CacheSweepInterval)
		entitiesCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "dataresolver", Version: dataresolver.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve a dotted data path against an entity or data document. The root is entity type/id loaded from the entities document, or the data document built as the given type. Returns every value the path reaches, in order; nothing found is an empty list, not an error. Invalid paths fail with a message naming the bad segment and, when one exists, a case-insensitive suggestion. Use offset/limit to paginate through values.",
	}, handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_path",
		Description: "Check a dotted data path against the schema of a type without loading any data. Returns valid=true, or valid=false with the error message and a suggested property name when the bad segment differs from a property only by case.",
	}, handleValidatePath)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_paths",
		Description: "List the dotted data paths a type accepts, depth-first in sorted order, with the display type each path ends at and whether it can yield multiple values. Recursive schemas are cut at max_depth segments (default configurable via DATARESOLVER_MAX_DEPTH). Use prefix to narrow to one subtree and offset/limit to paginate. Omit type to list the schema's type names instead.",
	}, handleListPaths)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to def.
func paginate[T any](items []T, offset, limit, def int) []T {
	if limit <= 0 {
		limit = def
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
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

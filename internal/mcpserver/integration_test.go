package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/dataresolver/internal/testutil"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "dataresolver-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	// Start server in background; it blocks until the connection closes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Tools, 3)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	for _, name := range []string{"resolve", "validate_path", "list_paths"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}
}

func TestIntegration_CallTool_Resolve(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "resolve",
		Arguments: map[string]any{
			"schema":   map[string]any{"content": testutil.ArticleSchemaYAML},
			"entities": map[string]any{"content": testutil.EntitiesYAML},
			"type":     "node:article",
			"id":       "2",
			"path":     "uid.entity.roles.entity.label",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, []any{"Editor"}, structured["values"])
	assert.Equal(t, float64(1), structured["total"])
	assert.Equal(t, testutil.ArticleType, structured["data_type"])
}

func TestIntegration_CallTool_ResolveFromFiles(t *testing.T) {
	session := startTestSession(t)
	schema := testutil.WriteTempFile(t, "schema.yaml", testutil.ArticleSchemaYAML)
	entities := testutil.WriteTempFile(t, "entities.yaml", testutil.EntitiesYAML)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "resolve",
		Arguments: map[string]any{
			"schema":   map[string]any{"file": schema},
			"entities": map[string]any{"file": entities},
			"type":     "node:article",
			"id":       "1",
			"path":     "uid.entity.name.value",
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, []any{"user0"}, unmarshalStructured(t, result)["values"])
}

func TestIntegration_CallTool_ResolveInvalidPath(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "resolve",
		Arguments: map[string]any{
			"schema":   map[string]any{"content": testutil.ArticleSchemaYAML},
			"entities": map[string]any{"content": testutil.EntitiesYAML},
			"type":     "node:article",
			"id":       "1",
			"path":     "uid.foo",
		},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "'foo' is not a valid property name in the path 'uid.foo' for the given entity:node:article.", text.Text)
}

func TestIntegration_CallTool_ValidatePath(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "validate_path",
		Arguments: map[string]any{
			"schema": map[string]any{"content": testutil.ArticleSchemaYAML},
			"type":   "node:article",
			"path":   "UID",
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, false, structured["valid"])
	assert.Equal(t, "uid", structured["suggestion"])
}

func TestIntegration_CallTool_ListPaths(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "list_paths",
		Arguments: map[string]any{
			"schema":    map[string]any{"content": testutil.ArticleSchemaYAML},
			"type":      "node:article",
			"max_depth": 1,
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(2), structured["total"])
	paths, ok := structured["paths"].([]any)
	require.True(t, ok)
	require.Len(t, paths, 2)
	assert.Equal(t, "title", paths[0].(map[string]any)["path"])
	assert.Equal(t, "uid", paths[1].(map[string]any)["path"])
}

// unmarshalStructured extracts the structured output of a tool result as a map.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	// Prefer structured content if available.
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	// Fall back to parsing text content.
	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}

package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcptoolkit/internal/registry"
)

// connect spins up the full server over in-memory transports and returns
// a connected client session.
func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New(logger)
	require.NoError(t, err)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ctx := context.Background()

	serverSession, err := srv.Registry().Server().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })

	return clientSession
}

// envelope decodes the single JSON text block a tool call returns.
func envelope(t *testing.T, res *mcp.CallToolResult) registry.Envelope {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	var env registry.Envelope
	require.NoError(t, json.Unmarshal([]byte(text.Text), &env))
	return env
}

func TestServerCatalog(t *testing.T) {
	session := connect(t)
	ctx := context.Background()

	t.Run("lists all tools", func(t *testing.T) {
		res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
		assert.Nil(t, err)
		names := []string{}
		for _, tool := range res.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{
			"list_files", "search_files", "create_file",
			"get_system_info", "run_command", "get_environment_variable",
			"get_current_time", "calculate_time_difference",
			"count_words", "format_text", "convert_data",
		}, names)
	})

	t.Run("lists all prompts", func(t *testing.T) {
		res, err := session.ListPrompts(ctx, &mcp.ListPromptsParams{})
		assert.Nil(t, err)
		names := []string{}
		for _, prompt := range res.Prompts {
			names = append(names, prompt.Name)
		}
		assert.ElementsMatch(t, []string{"code_review", "documentation", "debugging", "optimization"}, names)
	})
}

func TestCallToolOverTransport(t *testing.T) {
	session := connect(t)
	ctx := context.Background()

	t.Run("count_words", func(t *testing.T) {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "count_words",
			Arguments: map[string]any{"text": "hello hello world"},
		})
		assert.Nil(t, err)
		env := envelope(t, res)
		assert.Equal(t, 3.0, env["word_count"])
		assert.Equal(t, 2.0, env["unique_words"])
	})

	t.Run("error envelope is a result, not a protocol fault", func(t *testing.T) {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "list_files",
			Arguments: map[string]any{"directory": "/definitely/not/here"},
		})
		assert.Nil(t, err)
		env := envelope(t, res)
		assert.True(t, env.Failed())
	})
}

func TestPromptOverTransport(t *testing.T) {
	session := connect(t)

	res, err := session.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      "code_review",
		Arguments: map[string]string{"file_path": "main.go"},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "main.go")
}

func TestResourceOverTransport(t *testing.T) {
	session := connect(t)
	ctx := context.Background()

	t.Run("file resource resolves slashed absolute paths", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "hello.txt")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("resource text"), 0o644))

		res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "file://" + path})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Equal(t, "resource text", res.Contents[0].Text)
	})

	t.Run("project resource", func(t *testing.T) {
		res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "project://demo"})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Contains(t, res.Contents[0].Text, "Project: demo")
	})
}

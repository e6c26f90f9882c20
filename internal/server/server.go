// Package server wires the tool, prompt, and resource catalogs into an
// MCP server and runs it over the selected transport.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mcptoolkit/internal/metadata"
	"mcptoolkit/internal/prompts"
	"mcptoolkit/internal/registry"
	"mcptoolkit/internal/resources"
	"mcptoolkit/internal/tools"
)

// Server owns the populated registry and the transport loops.
type Server struct {
	reg    *registry.Registry
	logger *slog.Logger
}

// New builds the registry and registers the full catalog. The registry is
// immutable once New returns.
func New(logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	reg := registry.New(&mcp.Implementation{
		Name:    metadata.Name,
		Title:   metadata.Title,
		Version: metadata.Version,
	}, logger)

	if err := registerTools(reg); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	if err := prompts.Register(reg); err != nil {
		return nil, fmt.Errorf("registering prompts: %w", err)
	}
	if err := resources.Register(reg); err != nil {
		return nil, fmt.Errorf("registering resources: %w", err)
	}

	// get_system_info dumps the whole process environment to clients.
	logger.Warn("get_system_info exposes all process environment variables to connected clients")

	return &Server{reg: reg, logger: logger}, nil
}

// Registry exposes the catalog for in-process invocation.
func (s *Server) Registry() *registry.Registry {
	return s.reg
}

func registerTools(reg *registry.Registry) error {
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "list_files",
		Description: "List files in a directory with optional glob pattern matching",
	}, tools.ListFiles); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "search_files",
		Description: "Recursively search files for text, with an optional extension filter",
	}, tools.SearchFiles); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "create_file",
		Description: "Create a new file with the given content",
	}, tools.CreateFile); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "get_system_info",
		Description: "Report OS, architecture, runtime, directories, and environment",
	}, tools.GetSystemInfo); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "run_command",
		Description: "Execute a shell command with a 30-second timeout",
	}, tools.RunCommand); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "get_environment_variable",
		Description: "Read one environment variable with an explicit existence flag",
	}, tools.GetEnvironmentVariable); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "get_current_time",
		Description: "Report the current time, date, weekday, and epoch seconds",
	}, tools.GetCurrentTime); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "calculate_time_difference",
		Description: "Compute the signed difference between two timestamps",
	}, tools.CalculateTimeDifference); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "count_words",
		Description: "Word, character, and line statistics for a text",
	}, tools.CountWords); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "format_text",
		Description: "Reformat text: clean, uppercase, lowercase, title, or sentence",
	}, tools.FormatText); err != nil {
		return err
	}
	if err := registry.AddTool(reg, &mcp.Tool{
		Name:        "convert_data",
		Description: "Convert JSON between pretty and compact renderings",
	}, tools.ConvertData); err != nil {
		return err
	}
	return nil
}

// RunStdio serves the MCP protocol over stdin/stdout until the context is
// canceled or the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio", "server", metadata.Name, "version", metadata.Version)
	return s.reg.Server().Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport at /mcp, with health and
// metrics endpoints alongside.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.reg.Server()
	}, nil)
	router.Any("/mcp", gin.WrapH(handler))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "server": metadata.Name, "version": metadata.Version})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer := &http.Server{Addr: addr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	s.logger.Info("serving MCP over HTTP", "addr", addr, "endpoint", "/mcp")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Package registry holds the immutable catalogs of tools, prompts, and
// resources and routes named invocations to their handlers.
//
// The registry is populated once at process start and never mutated
// afterwards. Tool handlers are total functions: any failure is reported
// inside the result envelope, never raised past the handler boundary.
// Only registration collisions and unknown-name lookups surface as
// dispatch-level errors.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	// ErrNotFound reports a lookup for a name absent from the catalog.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName reports a registration collision within a catalog.
	ErrDuplicateName = errors.New("name already registered")
	// ErrInvalidArguments reports arguments that do not match the
	// declared input schema.
	ErrInvalidArguments = errors.New("invalid arguments")
)

// ToolFunc is a tool handler: decoded arguments in, result envelope out.
// Handlers never return a Go error; failures go into the envelope.
type ToolFunc[In any] func(ctx context.Context, in In) Envelope

type rawCall func(ctx context.Context, raw json.RawMessage) (Envelope, error)

type toolEntry struct {
	tool *mcp.Tool
	call rawCall
}

type promptEntry struct {
	prompt  *mcp.Prompt
	handler mcp.PromptHandler
}

type resourceEntry struct {
	template *mcp.ResourceTemplate
	handler  mcp.ResourceHandler
}

// Registry wraps an mcp.Server and keeps its own catalog index so that
// definitions can also be invoked in-process, without a transport.
type Registry struct {
	server    *mcp.Server
	logger    *slog.Logger
	tools     map[string]*toolEntry
	prompts   map[string]*promptEntry
	resources map[string]*resourceEntry // keyed by URI scheme
}

// New creates an empty registry backed by a fresh MCP server.
func New(impl *mcp.Implementation, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		server:    mcp.NewServer(impl, nil),
		logger:    logger,
		tools:     make(map[string]*toolEntry),
		prompts:   make(map[string]*promptEntry),
		resources: make(map[string]*resourceEntry),
	}
}

// Server returns the underlying MCP server for transport hookup.
func (r *Registry) Server() *mcp.Server {
	return r.server
}

// AddTool registers a tool with a typed handler. The input schema is
// inferred from In unless the tool already declares one.
func AddTool[In any](r *Registry, tool *mcp.Tool, fn ToolFunc[In]) error {
	if _, ok := r.tools[tool.Name]; ok {
		return fmt.Errorf("tool %q: %w", tool.Name, ErrDuplicateName)
	}
	schema, _ := tool.InputSchema.(*jsonschema.Schema)
	if schema == nil {
		inferred, err := jsonschema.For[In](nil)
		if err != nil {
			return fmt.Errorf("tool %q: inferring input schema: %w", tool.Name, err)
		}
		tool.InputSchema = inferred
		schema = inferred
	}
	required := schema.Required

	call := r.observe(tool.Name, func(ctx context.Context, raw json.RawMessage) (Envelope, error) {
		if err := checkArguments(tool.Name, raw, required); err != nil {
			return nil, err
		}
		var in In
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &in); err != nil {
				return nil, fmt.Errorf("tool %q: %w: %v", tool.Name, ErrInvalidArguments, err)
			}
		}
		return fn(ctx, in), nil
	})

	entry := &toolEntry{tool: tool, call: call}
	r.tools[tool.Name] = entry
	r.server.AddTool(tool, entry.handleMCP)
	return nil
}

// InvokeTool dispatches a tool call in-process. Arguments are decoded
// against the declared schema before the handler runs.
func (r *Registry) InvokeTool(ctx context.Context, name string, arguments json.RawMessage) (Envelope, error) {
	entry, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool %q: %w", name, ErrNotFound)
	}
	return entry.call(ctx, arguments)
}

// AddPrompt registers a prompt template.
func (r *Registry) AddPrompt(prompt *mcp.Prompt, handler mcp.PromptHandler) error {
	if _, ok := r.prompts[prompt.Name]; ok {
		return fmt.Errorf("prompt %q: %w", prompt.Name, ErrDuplicateName)
	}
	r.prompts[prompt.Name] = &promptEntry{prompt: prompt, handler: handler}
	r.server.AddPrompt(prompt, handler)
	return nil
}

// InvokePrompt renders a prompt in-process and returns the generated text.
func (r *Registry) InvokePrompt(ctx context.Context, name string, arguments map[string]string) (string, error) {
	entry, ok := r.prompts[name]
	if !ok {
		return "", fmt.Errorf("prompt %q: %w", name, ErrNotFound)
	}
	for _, arg := range entry.prompt.Arguments {
		if !arg.Required {
			continue
		}
		if _, ok := arguments[arg.Name]; !ok {
			return "", fmt.Errorf("prompt %q: missing required argument %q: %w", name, arg.Name, ErrInvalidArguments)
		}
	}
	res, err := entry.handler(ctx, &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: name, Arguments: arguments},
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, msg := range res.Messages {
		if text, ok := msg.Content.(*mcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String(), nil
}

// AddResourceTemplate registers a URI-templated resource provider. The
// template's URI scheme is the catalog key.
func (r *Registry) AddResourceTemplate(template *mcp.ResourceTemplate, handler mcp.ResourceHandler) error {
	scheme := uriScheme(template.URITemplate)
	if scheme == "" {
		return fmt.Errorf("resource template %q: no URI scheme", template.URITemplate)
	}
	if _, ok := r.resources[scheme]; ok {
		return fmt.Errorf("resource scheme %q: %w", scheme, ErrDuplicateName)
	}
	r.resources[scheme] = &resourceEntry{template: template, handler: handler}
	r.server.AddResourceTemplate(template, handler)
	return nil
}

// ReadResource resolves a URI against the registered templates and
// returns the provider's text payload.
func (r *Registry) ReadResource(ctx context.Context, uri string) (string, error) {
	entry, ok := r.resources[uriScheme(uri)]
	if !ok {
		return "", fmt.Errorf("resource %q: %w", uri, ErrNotFound)
	}
	res, err := entry.handler(ctx, &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, contents := range res.Contents {
		sb.WriteString(contents.Text)
	}
	return sb.String(), nil
}

// handleMCP adapts an entry to the SDK tool handler signature. The
// envelope is serialized as a single JSON text content block.
func (e *toolEntry) handleMCP(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := rawArguments(req.Params.Arguments)
	if err != nil {
		return nil, fmt.Errorf("tool %q: %w: %v", e.tool.Name, ErrInvalidArguments, err)
	}
	env, err := e.call(ctx, raw)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("tool %q: encoding result: %w", e.tool.Name, err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil
}

// observe wraps a call with panic containment, per-invocation logging,
// and Prometheus accounting. A panic becomes an error envelope so the
// handler stays total.
func (r *Registry) observe(name string, call rawCall) rawCall {
	return func(ctx context.Context, raw json.RawMessage) (env Envelope, err error) {
		id := uuid.NewString()
		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				env, err = Failf("internal error in %s: %v", name, p), nil
			}
			outcome := "ok"
			if err != nil || env.Failed() {
				outcome = "error"
			}
			elapsed := time.Since(start)
			toolInvocations.WithLabelValues(name, outcome).Inc()
			toolDuration.WithLabelValues(name).Observe(elapsed.Seconds())
			r.logger.Info("tool invocation",
				"tool", name,
				"invocation_id", id,
				"outcome", outcome,
				"elapsed", elapsed,
			)
		}()
		return call(ctx, raw)
	}
}

// checkArguments verifies that every schema-required parameter is present
// before decoding. Optional parameters take their defaults inside the
// handler.
func checkArguments(name string, raw json.RawMessage, required []string) error {
	fields := map[string]json.RawMessage{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("tool %q: %w: %v", name, ErrInvalidArguments, err)
		}
	}
	for _, param := range required {
		if _, ok := fields[param]; !ok {
			return fmt.Errorf("tool %q: missing required parameter %q: %w", name, param, ErrInvalidArguments)
		}
	}
	return nil
}

// rawArguments normalizes the transport-decoded argument value to raw
// JSON for schema checking.
func rawArguments(v any) (json.RawMessage, error) {
	switch args := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return args, nil
	default:
		return json.Marshal(args)
	}
}

func uriScheme(uri string) string {
	scheme, _, ok := strings.Cut(uri, "://")
	if !ok {
		return ""
	}
	return scheme
}

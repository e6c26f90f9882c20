// Package resources provides the URI-templated read-only data providers.
// Unlike tools, resource handlers return a bare string: failures are
// reported as inline error text, not as an error envelope.
package resources

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mcptoolkit/internal/registry"
)

// projectFiles is the fixed list of well-known project metadata files
// concatenated by the project resource. Absent files are skipped.
var projectFiles = []string{
	"README.md",
	"go.mod",
	"package.json",
	"pyproject.toml",
	"requirements.txt",
	"Makefile",
}

// Register adds both resource templates to the registry.
func Register(reg *registry.Registry) error {
	// Reserved expansion: absolute paths contain slashes, which the
	// simple-expansion form would refuse to match.
	fileTemplate := &mcp.ResourceTemplate{
		URITemplate: "file://{+file_path}",
		Name:        "file-content",
		Description: "Raw text content of a file",
		MIMEType:    "text/plain",
	}
	if err := reg.AddResourceTemplate(fileTemplate, handleText("file://", FileContent)); err != nil {
		return err
	}

	projectTemplate := &mcp.ResourceTemplate{
		URITemplate: "project://{project_name}",
		Name:        "project-info",
		Description: "Concatenated well-known project metadata files",
		MIMEType:    "text/plain",
	}
	return reg.AddResourceTemplate(projectTemplate, handleText("project://", ProjectInfo))
}

// handleText adapts a string provider to the SDK resource handler
// signature, extracting the template placeholder from the URI.
func handleText(prefix string, provide func(value string) string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		value := strings.TrimPrefix(req.Params.URI, prefix)
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "text/plain", Text: provide(value)},
			},
		}, nil
	}
}

// FileContent returns the raw text of a file, or an inline error string
// when the file cannot be read.
func FileContent(filePath string) string {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Sprintf("Error reading file %s: %v", filePath, err)
	}
	return string(content)
}

// ProjectInfo concatenates the contents of the well-known project
// metadata files in the current directory, prefixing each with a
// filename header and skipping files that do not exist.
func ProjectInfo(projectName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project: %s\n\n", projectName)
	for _, name := range projectFiles {
		content, err := os.ReadFile(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "=== %s ===\n%s\n\n", name, content)
	}
	return sb.String()
}

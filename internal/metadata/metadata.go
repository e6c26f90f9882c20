// Package metadata holds the server identity advertised to MCP clients.
package metadata

const (
	Name    = "mcptoolkit"
	Version = "0.1.0"
	Title   = "Efficiency Tools"
)

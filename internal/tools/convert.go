package tools

import (
	"context"
	"encoding/json"

	"mcptoolkit/internal/registry"
)

// ConvertDataInput names the payload and the source and target formats.
type ConvertDataInput struct {
	Data       string `json:"data" jsonschema:"Payload to convert."`
	FromFormat string `json:"from_format" jsonschema:"Source format; only json is supported."`
	ToFormat   string `json:"to_format" jsonschema:"Target format; json (pretty) or compact_json."`
}

// ConvertData round-trips a JSON document, re-rendering it either pretty
// or compact. Any other source or target format is rejected with an error
// naming the offending format.
func ConvertData(ctx context.Context, in ConvertDataInput) registry.Envelope {
	if in.FromFormat != "json" {
		return registry.Failf("unsupported input format: %s", in.FromFormat)
	}

	var parsed any
	if err := json.Unmarshal([]byte(in.Data), &parsed); err != nil {
		return registry.Failf("parsing JSON input: %v", err)
	}

	var (
		out []byte
		err error
	)
	switch in.ToFormat {
	case "json":
		out, err = json.MarshalIndent(parsed, "", "  ")
	case "compact_json":
		out, err = json.Marshal(parsed)
	default:
		return registry.Failf("unsupported output format: %s", in.ToFormat)
	}
	if err != nil {
		return registry.Failf("encoding JSON output: %v", err)
	}

	return registry.Envelope{
		"success":     true,
		"from_format": in.FromFormat,
		"to_format":   in.ToFormat,
		"result":      string(out),
		"size":        len(out),
	}
}

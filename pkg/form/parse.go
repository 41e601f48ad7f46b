package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a serialisation format for schemas and values.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Parse decodes a schema from JSON or YAML (JSON is attempted first) and
// validates it. source only labels error messages.
func Parse(data []byte, source string) (Schema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Schema{}, fmt.Errorf("form: schema %s is empty", source)
	}

	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		schema = Schema{}
		if yerr := yaml.Unmarshal(data, &schema); yerr != nil {
			return Schema{}, fmt.Errorf("form: parse %s: invalid JSON or YAML", source)
		}
	}

	if err := schema.Validate(); err != nil {
		return Schema{}, fmt.Errorf("form: schema %s: %w", source, err)
	}
	return schema, nil
}

// Encode serialises any schema-related value (Schema, Values, display
// options) in the requested format. JSON output is indented.
func Encode(value any, format Format) ([]byte, error) {
	switch Format(strings.ToLower(string(format))) {
	case "", FormatJSON:
		payload, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("form: encode json: %w", err)
		}
		return append(payload, '\n'), nil
	case FormatYAML, "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return nil, fmt.Errorf("form: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("form: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("form: unsupported format %q", format)
	}
}

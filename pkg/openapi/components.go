package openapi

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
)

// OptionsSchemaProvider is implemented by configurations that can describe
// their persisted display options.
type OptionsSchemaProvider interface {
	OptionsSchema() *openapi3.Schema
}

// SchemaName returns the component name used for typ, e.g. DurationDisplayOptions.
func SchemaName(typ abstracttype.Type) string {
	var b strings.Builder
	upper := true
	for _, r := range string(typ) {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	b.WriteString("DisplayOptions")
	return b.String()
}

// Provider returns the schema provider behind the registered configuration.
func Provider(reg *abstracttype.Registry, typ abstracttype.Type) (OptionsSchemaProvider, bool, error) {
	if reg == nil {
		return nil, false, fmt.Errorf("openapi: registry is required")
	}
	cfg, err := reg.Get(typ)
	if err != nil {
		return nil, false, fmt.Errorf("openapi: %w", err)
	}
	provider, ok := abstracttype.Unwrap(cfg).(OptionsSchemaProvider)
	return provider, ok, nil
}

// Components builds one component schema per registered type that describes
// its display options. Types without a provider are skipped.
func Components(reg *abstracttype.Registry) (openapi3.Components, error) {
	components := openapi3.NewComponents()
	components.Schemas = make(openapi3.Schemas)
	if reg == nil {
		return components, fmt.Errorf("openapi: registry is required")
	}

	for _, typ := range reg.List() {
		provider, ok, err := Provider(reg, typ)
		if err != nil {
			return components, err
		}
		if !ok {
			continue
		}
		schema := provider.OptionsSchema()
		if schema == nil {
			continue
		}
		components.Schemas[SchemaName(typ)] = openapi3.NewSchemaRef("", schema)
	}
	return components, nil
}

// Document wraps Components in a minimal OpenAPI 3 document so the schemas can
// be published or diffed as a standalone file.
func Document(reg *abstracttype.Registry, title, version string) (*openapi3.T, error) {
	components, err := Components(reg)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = "Column display options"
	}
	if strings.TrimSpace(version) == "" {
		version = "1.0.0"
	}
	doc := &openapi3.T{
		OpenAPI:    "3.0.3",
		Info:       &openapi3.Info{Title: title, Version: version},
		Paths:      openapi3.NewPaths(),
		Components: &components,
	}
	return doc, nil
}

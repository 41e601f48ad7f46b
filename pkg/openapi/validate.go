package openapi

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
)

// ValidateOptions checks stored display options against the schema published
// by the type. Absent options (never configured) are valid, as are options of
// types that publish no schema.
func ValidateOptions(reg *abstracttype.Registry, typ abstracttype.Type, options abstracttype.DisplayOptions) error {
	if options == nil {
		return nil
	}
	provider, ok, err := Provider(reg, typ)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	schema := provider.OptionsSchema()
	if schema == nil {
		return nil
	}

	value, err := jsonValue(options)
	if err != nil {
		return fmt.Errorf("openapi: %q options: %w", typ, err)
	}
	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("openapi: %q options invalid: %w", typ, err)
	}
	return nil
}

// jsonValue normalises options into the generic JSON shapes VisitJSON expects
// (float64 numbers, map[string]any objects).
func jsonValue(options abstracttype.DisplayOptions) (any, error) {
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

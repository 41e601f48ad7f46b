// Package duration configures how duration columns are displayed. Users pick
// the largest and smallest units a value is broken into (for example minutes
// down to seconds) through the external "duration-config-menu" widget.
package duration

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/form"
)

const (
	// DefaultMax is the upper unit bound of a never-configured column.
	DefaultMax = UnitMinutes
	// DefaultMin is the lower unit bound of a never-configured column.
	DefaultMin = UnitSeconds

	// VariableName is the single custom form variable holding the unit range.
	VariableName = "durationConfig"
	// ComponentID names the widget that edits VariableName.
	ComponentID = "duration-config-menu"
	// IconToken is the icon shown next to duration columns.
	IconToken = ":"

	optionMax       = "max"
	optionMin       = "min"
	optionShowUnits = "show_units"
)

// Option configures a Type.
type Option func(*Type)

// WithDefaults overrides the fallback unit bounds. Ranges that are not valid
// (unknown unit, or min larger than max) are ignored.
func WithDefaults(max, min Unit) Option {
	return func(t *Type) {
		candidate := Range{Max: max, Min: min}
		if candidate.Valid() {
			t.defaults = candidate
		}
	}
}

// Type is the duration abstract type configuration. It is immutable once
// constructed.
type Type struct {
	defaults Range
}

var _ abstracttype.Configuration = (*Type)(nil)

// New builds the duration configuration with DefaultMax/DefaultMin unless
// overridden.
func New(options ...Option) *Type {
	t := &Type{defaults: Range{Max: DefaultMax, Min: DefaultMin}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// Defaults returns the fallback unit bounds. A nil *Type behaves like New().
func (t *Type) Defaults() Range {
	if t == nil {
		return Range{Max: DefaultMax, Min: DefaultMin}
	}
	return t.defaults
}

// Icon returns the duration icon token.
func (t *Type) Icon() string {
	return IconToken
}

// Cell reports that duration cells reuse the string cell renderer.
func (t *Type) Cell() abstracttype.CellConfig {
	return abstracttype.CellConfig{Type: abstracttype.CellString}
}

// DisplayConfig returns a fresh form schema and transform pair.
func (t *Type) DisplayConfig() abstracttype.DisplayConfig {
	return abstracttype.DisplayConfig{
		Form:                    t.Form(),
		DetermineDisplayOptions: t.DetermineDisplayOptions,
		ConstructFormValues:     t.ConstructFormValues,
	}
}

// Form describes the display form: one custom variable rendered by the
// duration menu widget inside a vertical container.
func (t *Type) Form() form.Schema {
	return form.Schema{
		Variables: map[string]form.Variable{
			VariableName: {
				Type:    form.VariableTypeCustom,
				Default: t.Defaults().payload(),
			},
		},
		Layout: form.Vertical(form.Static(VariableName, ComponentID)),
	}
}

// DetermineDisplayOptions spreads the durationConfig payload into the display
// options. show_units is not user configurable yet and is always written as
// false.
func (t *Type) DetermineDisplayOptions(values form.Values) abstracttype.DisplayOptions {
	options := abstracttype.DisplayOptions{}

	switch payload := values[VariableName].(type) {
	case map[string]any:
		for key, value := range payload {
			options[key] = value
		}
	case Range:
		payload.spreadInto(options)
	case *Range:
		if payload != nil {
			payload.spreadInto(options)
		}
	}

	options[optionShowUnits] = false
	return options
}

// ConstructFormValues seeds the form from stored display options. max and min
// fall back to the defaults independently, so partially configured columns
// keep whichever bound they have.
func (t *Type) ConstructFormValues(options abstracttype.DisplayOptions) form.Values {
	defaults := t.Defaults()
	return form.Values{
		VariableName: map[string]any{
			optionMax: optionOr(options, optionMax, defaults.Max),
			optionMin: optionOr(options, optionMin, defaults.Min),
		},
	}
}

// OptionsSchema describes the persisted display options.
func (t *Type) OptionsSchema() *openapi3.Schema {
	vocabulary := make([]any, 0, len(units))
	for _, unit := range units {
		vocabulary = append(vocabulary, string(unit))
	}

	schema := openapi3.NewObjectSchema().
		WithProperty(optionMax, openapi3.NewStringSchema().WithEnum(vocabulary...)).
		WithProperty(optionMin, openapi3.NewStringSchema().WithEnum(vocabulary...)).
		WithProperty(optionShowUnits, openapi3.NewBoolSchema())
	schema.Required = []string{optionShowUnits}
	schema.Description = "Display options for duration columns."
	return schema
}

// RangeFromValue reads a durationConfig payload. Missing bounds are left empty
// and ok is false when the payload is of an unexpected shape.
func RangeFromValue(value any) (Range, bool) {
	switch payload := value.(type) {
	case Range:
		return payload, true
	case *Range:
		if payload == nil {
			return Range{}, false
		}
		return *payload, true
	case map[string]any:
		return Range{Max: unitOf(payload[optionMax]), Min: unitOf(payload[optionMin])}, true
	default:
		return Range{}, false
	}
}

func (r Range) payload() map[string]any {
	return map[string]any{
		optionMax: string(r.Max),
		optionMin: string(r.Min),
	}
}

func (r Range) spreadInto(options abstracttype.DisplayOptions) {
	if r.Max != "" {
		options[optionMax] = string(r.Max)
	}
	if r.Min != "" {
		options[optionMin] = string(r.Min)
	}
}

// optionOr returns the stored value when the key is present and non-nil.
// Stored values pass through untouched apart from Unit, which is flattened to
// its token.
func optionOr(options abstracttype.DisplayOptions, key string, fallback Unit) any {
	value, ok := options[key]
	if !ok || value == nil {
		return string(fallback)
	}
	if unit, isUnit := value.(Unit); isUnit {
		return string(unit)
	}
	return value
}

func unitOf(value any) Unit {
	switch typed := value.(type) {
	case string:
		return Unit(typed)
	case Unit:
		return typed
	default:
		return ""
	}
}

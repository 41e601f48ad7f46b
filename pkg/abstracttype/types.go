package abstracttype

import "github.com/goliatone/go-typeconfig/pkg/form"

// Type identifies a semantic column kind, independent of the physical storage
// type backing it.
type Type string

// Duration is the abstract type for time intervals.
const Duration Type = "duration"

// CellType selects the generic cell renderer used for values of a type.
type CellType string

const (
	CellString   CellType = "string"
	CellNumber   CellType = "number"
	CellBoolean  CellType = "boolean"
	CellDate     CellType = "date"
	CellTime     CellType = "time"
	CellDateTime CellType = "datetime"
)

// CellConfig describes how cells of an abstract type are rendered.
type CellConfig struct {
	Type CellType `json:"type" yaml:"type"`
}

// DisplayOptions is the persisted, type-specific display configuration stored
// with a column. A nil map means the column has never been configured.
type DisplayOptions map[string]any

// DisplayConfig bundles the form schema with the transforms between persisted
// display options and form values. It holds no state and is rebuilt on every
// Configuration.DisplayConfig call.
type DisplayConfig struct {
	Form form.Schema
	// DetermineDisplayOptions converts submitted form values into the persisted
	// display options. It must not fail on values conforming to Form.
	DetermineDisplayOptions func(values form.Values) DisplayOptions
	// ConstructFormValues seeds form values from persisted display options,
	// falling back to declared defaults. It must accept nil.
	ConstructFormValues func(options DisplayOptions) form.Values
}

// Configuration is the shape every abstract type exposes to the registry.
type Configuration interface {
	Icon() string
	Cell() CellConfig
	DisplayConfig() DisplayConfig
}

// Descriptor is a ready-made Configuration for types whose configuration is
// fully described by static values and a factory.
type Descriptor struct {
	IconToken string
	CellKind  CellType
	Factory   func() DisplayConfig
}

// Icon returns the icon token.
func (d Descriptor) Icon() string { return d.IconToken }

// Cell returns the cell configuration.
func (d Descriptor) Cell() CellConfig { return CellConfig{Type: d.CellKind} }

// DisplayConfig invokes the factory. A nil factory yields an empty config.
func (d Descriptor) DisplayConfig() DisplayConfig {
	if d.Factory == nil {
		return DisplayConfig{}
	}
	return d.Factory()
}

// RoundTrip seeds form values from options and determines options again, the
// path a dialog submitted without edits takes.
func (c DisplayConfig) RoundTrip(options DisplayOptions) DisplayOptions {
	return c.DetermineDisplayOptions(c.ConstructFormValues(options))
}

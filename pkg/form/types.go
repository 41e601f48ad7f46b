package form

// VariableType enumerates the kinds of values a form variable can hold.
type VariableType string

const (
	VariableTypeString  VariableType = "string"
	VariableTypeInteger VariableType = "integer"
	VariableTypeFloat   VariableType = "float"
	VariableTypeBoolean VariableType = "boolean"
	VariableTypeOptions VariableType = "options"
	// VariableTypeCustom marks a variable whose value is an opaque payload owned
	// by an external widget. Only static layout elements can render it.
	VariableTypeCustom VariableType = "custom"
)

// Valid reports whether the type is one of the known variable kinds.
func (t VariableType) Valid() bool {
	switch t {
	case VariableTypeString, VariableTypeInteger, VariableTypeFloat,
		VariableTypeBoolean, VariableTypeOptions, VariableTypeCustom:
		return true
	default:
		return false
	}
}

// ElementType tags the layout element variants.
type ElementType string

const (
	// ElementStatic binds a variable to a named widget (component id).
	ElementStatic ElementType = "static"
	// ElementInput binds a variable to a widget synthesised from its kind.
	ElementInput ElementType = "input"
	// ElementLayout groups child elements in an orientation.
	ElementLayout ElementType = "layout"
)

// Orientation controls how a layout container arranges its children.
type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

// Variable describes one editable value. Default seeds new forms; for custom
// variables it is an arbitrary payload interpreted only by the owning widget
// and the abstract type's transforms.
type Variable struct {
	Type    VariableType `json:"type" yaml:"type"`
	Default any          `json:"default,omitempty" yaml:"default,omitempty"`
	Label   string       `json:"label,omitempty" yaml:"label,omitempty"`
	Enum    []any        `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// Element is a node of the layout tree. Leaf nodes (static, input) reference
// exactly one variable; layout nodes carry an orientation and ordered children.
// The zero Orientation on a layout node is treated as vertical.
type Element struct {
	Type        ElementType `json:"type" yaml:"type"`
	Variable    string      `json:"variable,omitempty" yaml:"variable,omitempty"`
	ComponentID string      `json:"componentId,omitempty" yaml:"componentId,omitempty"`
	Orientation Orientation `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Elements    []Element   `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// Schema is the declarative description of a form. Variables carry no order;
// the layout defines render order.
type Schema struct {
	Variables map[string]Variable `json:"variables" yaml:"variables"`
	Layout    Element             `json:"layout" yaml:"layout"`
}

// Values maps variable names to the value the form currently holds.
type Values map[string]any

// Vertical builds a vertical layout container.
func Vertical(children ...Element) Element {
	return Element{Type: ElementLayout, Orientation: OrientationVertical, Elements: children}
}

// Horizontal builds a horizontal layout container.
func Horizontal(children ...Element) Element {
	return Element{Type: ElementLayout, Orientation: OrientationHorizontal, Elements: children}
}

// Static binds a variable to an external widget.
func Static(variable, componentID string) Element {
	return Element{Type: ElementStatic, Variable: variable, ComponentID: componentID}
}

// Input binds a variable to the renderer's default widget for its kind.
func Input(variable string) Element {
	return Element{Type: ElementInput, Variable: variable}
}

// IsLeaf reports whether the element binds a variable.
func (e Element) IsLeaf() bool {
	return e.Type == ElementStatic || e.Type == ElementInput
}

// Walk visits the layout depth-first in render order. Returning false from fn
// stops the walk.
func (e Element) Walk(fn func(path string, el Element) bool) {
	e.walk("layout", fn)
}

func (e Element) walk(path string, fn func(string, Element) bool) bool {
	if !fn(path, e) {
		return false
	}
	for idx, child := range e.Elements {
		if !child.walk(childPath(path, idx), fn) {
			return false
		}
	}
	return true
}

// Leaves returns the leaf elements of the layout in render order.
func (s Schema) Leaves() []Element {
	var out []Element
	s.Layout.Walk(func(_ string, el Element) bool {
		if el.IsLeaf() {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Defaults returns a fresh Values map holding every variable's declared
// default. Map and slice defaults are copied so callers can mutate the result.
func (s Schema) Defaults() Values {
	values := make(Values, len(s.Variables))
	for name, variable := range s.Variables {
		values[name] = cloneValue(variable.Default)
	}
	return values
}

// Clone returns a deep copy of the values.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}

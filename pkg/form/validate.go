package form

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// maxLayoutDepth bounds layout nesting. Schemas are value trees so they cannot
// cycle, but decoded documents can still be arbitrarily deep.
const maxLayoutDepth = 32

// Issue describes a single schema problem located by a dotted path such as
// `layout.elements[0]` or `variables.durationConfig`.
type Issue struct {
	Path    string
	Message string
	Err     error
}

func (i Issue) Error() string {
	if i.Path == "" {
		return "form: " + i.Message
	}
	return fmt.Sprintf("form: %s: %s", i.Path, i.Message)
}

// Unwrap returns the sentinel classifying the issue, if any.
func (i Issue) Unwrap() error {
	return i.Err
}

// ValidationError aggregates every issue found in a schema.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "form: invalid schema"
	}
	parts := make([]string, len(e.Issues))
	for idx, issue := range e.Issues {
		parts[idx] = issue.Error()
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the individual issues to errors.Is/As.
func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, len(e.Issues))
	for idx, issue := range e.Issues {
		out[idx] = issue
	}
	return out
}

// ErrUndeclaredVariable is matched (via errors.Is) by issues raised when the
// layout references a variable missing from Variables.
var ErrUndeclaredVariable = errors.New("form: layout references undeclared variable")

// Validate checks schema well-formedness: variable kinds are known, every leaf
// references exactly one declared variable, static leaves name a component,
// custom variables are only bound through static leaves, containers use a
// known orientation, and nesting stays bounded. All issues are reported.
func (s Schema) Validate() error {
	var issues []Issue

	names := make([]string, 0, len(s.Variables))
	for name := range s.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		variable := s.Variables[name]
		path := "variables." + name
		if strings.TrimSpace(name) == "" {
			issues = append(issues, Issue{Path: "variables", Message: "variable name is empty"})
			continue
		}
		if !variable.Type.Valid() {
			issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("unknown variable type %q", variable.Type)})
		}
		if variable.Type == VariableTypeOptions && len(variable.Enum) == 0 {
			issues = append(issues, Issue{Path: path, Message: "options variable declares no enum values"})
		}
	}

	if s.Layout.Type != ElementLayout {
		issues = append(issues, Issue{Path: "layout", Message: "root element must be a layout container"})
	}
	issues = s.validateElement(s.Layout, "layout", 0, issues)

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

func (s Schema) validateElement(el Element, path string, depth int, issues []Issue) []Issue {
	if depth > maxLayoutDepth {
		return append(issues, Issue{Path: path, Message: fmt.Sprintf("layout nested deeper than %d levels", maxLayoutDepth)})
	}

	switch el.Type {
	case ElementLayout:
		switch el.Orientation {
		case "", OrientationVertical, OrientationHorizontal:
		default:
			issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("unknown orientation %q", el.Orientation)})
		}
		if el.Variable != "" {
			issues = append(issues, Issue{Path: path, Message: "layout container must not bind a variable"})
		}
		for idx, child := range el.Elements {
			issues = s.validateElement(child, childPath(path, idx), depth+1, issues)
		}
	case ElementStatic, ElementInput:
		if len(el.Elements) > 0 {
			issues = append(issues, Issue{Path: path, Message: "leaf element must not have children"})
		}
		name := strings.TrimSpace(el.Variable)
		if name == "" {
			issues = append(issues, Issue{Path: path, Message: "leaf element does not reference a variable"})
			break
		}
		variable, ok := s.Variables[name]
		if !ok {
			issues = append(issues, undeclared(path, name))
			break
		}
		if el.Type == ElementStatic && strings.TrimSpace(el.ComponentID) == "" {
			issues = append(issues, Issue{Path: path, Message: "static element requires a componentId"})
		}
		if el.Type == ElementInput && variable.Type == VariableTypeCustom {
			issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("custom variable %q must be bound by a static element", name)})
		}
	default:
		issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("unknown element type %q", el.Type)})
	}
	return issues
}

func undeclared(path, name string) Issue {
	return Issue{
		Path:    path,
		Message: fmt.Sprintf("variable %q is not declared", name),
		Err:     ErrUndeclaredVariable,
	}
}

// ReferencedVariables returns the variable names bound by the layout, in
// render order, without duplicates.
func (s Schema) ReferencedVariables() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, leaf := range s.Leaves() {
		if _, ok := seen[leaf.Variable]; ok {
			continue
		}
		seen[leaf.Variable] = struct{}{}
		out = append(out, leaf.Variable)
	}
	return out
}

func childPath(parent string, idx int) string {
	return parent + ".elements[" + strconv.Itoa(idx) + "]"
}

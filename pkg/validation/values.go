// Package validation checks submitted form values against the variables a
// form schema declares before they reach a determine transform.
package validation

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/goliatone/go-typeconfig/pkg/form"
)

// ValueIssue represents a value that does not conform to its variable.
type ValueIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValuesResult captures validation outcomes for a submission.
type ValuesResult struct {
	Valid  bool         `json:"valid"`
	Issues []ValueIssue `json:"issues,omitempty"`
}

// Err returns nil for a valid result, otherwise an error listing every issue.
func (r ValuesResult) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Issues: append([]ValueIssue(nil), r.Issues...)}
}

// Error wraps the issues of an invalid submission.
type Error struct {
	Issues []ValueIssue
}

func (e *Error) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Issues[0].Field, e.Issues[0].Message)
	}
	return fmt.Sprintf("validation: %d invalid values (first %s: %s)", len(e.Issues), e.Issues[0].Field, e.Issues[0].Message)
}

// ValidateValues checks every declared variable present in values. Absent and
// nil values are accepted, as are values of custom variables since only their
// widget understands the payload. Keys the schema does not declare are
// reported.
func ValidateValues(schema form.Schema, values form.Values) ValuesResult {
	result := ValuesResult{Valid: true}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := values[name]
		variable, ok := schema.Variables[name]
		if !ok {
			result.add(name, "is not declared by the form")
			continue
		}
		if value == nil {
			continue
		}
		if msg := checkValue(variable, value); msg != "" {
			result.add(name, msg)
		}
	}
	return result
}

func (r *ValuesResult) add(field, message string) {
	r.Valid = false
	r.Issues = append(r.Issues, ValueIssue{Field: field, Message: message})
}

func checkValue(variable form.Variable, value any) string {
	switch variable.Type {
	case form.VariableTypeCustom:
		return ""
	case form.VariableTypeString:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("expected string, got %T", value)
		}
	case form.VariableTypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expected boolean, got %T", value)
		}
	case form.VariableTypeInteger:
		if !isInteger(value) {
			return fmt.Sprintf("expected integer, got %v", value)
		}
	case form.VariableTypeFloat:
		if _, ok := toFloat(value); !ok {
			return fmt.Sprintf("expected number, got %T", value)
		}
	case form.VariableTypeOptions:
		if !inEnum(variable.Enum, value) {
			return fmt.Sprintf("%v is not one of the declared options", value)
		}
		return ""
	default:
		return fmt.Sprintf("unknown variable type %q", variable.Type)
	}
	if len(variable.Enum) > 0 && !inEnum(variable.Enum, value) {
		return fmt.Sprintf("%v is not one of the declared options", value)
	}
	return ""
}

func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return float64(v) == math.Trunc(float64(v))
	case float64:
		return v == math.Trunc(v) && !math.IsInf(v, 0)
	default:
		return false
	}
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// inEnum compares numerically when both sides are numbers so values decoded
// from JSON (float64) match options declared as ints.
func inEnum(enum []any, value any) bool {
	target, numeric := toFloat(value)
	for _, option := range enum {
		if numeric {
			if candidate, ok := toFloat(option); ok && candidate == target {
				return true
			}
			continue
		}
		if reflect.DeepEqual(option, value) {
			return true
		}
	}
	return false
}

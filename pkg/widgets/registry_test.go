package widgets

import (
	"testing"

	"github.com/goliatone/go-typeconfig/pkg/form"
)

func TestResolve_ExplicitComponentWins(t *testing.T) {
	reg := NewRegistry()
	got, ok := reg.Resolve(
		form.Static("flag", "custom-toggle"),
		form.Variable{Type: form.VariableTypeBoolean},
	)
	if !ok || got != "custom-toggle" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name     string
		variable form.Variable
		expect   string
	}{
		{
			name:     "boolean toggle",
			variable: form.Variable{Type: form.VariableTypeBoolean},
			expect:   WidgetToggle,
		},
		{
			name:     "options select",
			variable: form.Variable{Type: form.VariableTypeOptions, Enum: []any{"a", "b"}},
			expect:   WidgetSelect,
		},
		{
			name:     "string with enum select",
			variable: form.Variable{Type: form.VariableTypeString, Enum: []any{"a"}},
			expect:   WidgetSelect,
		},
		{
			name:     "integer number",
			variable: form.Variable{Type: form.VariableTypeInteger},
			expect:   WidgetNumber,
		},
		{
			name:     "float number",
			variable: form.Variable{Type: form.VariableTypeFloat},
			expect:   WidgetNumber,
		},
		{
			name:     "plain string input",
			variable: form.Variable{Type: form.VariableTypeString},
			expect:   WidgetInput,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(form.Input("v"), tc.variable)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_CustomNeedsComponent(t *testing.T) {
	reg := NewRegistry()
	reg.Register("anything", 999, func(form.Element, form.Variable) bool { return true })

	if got, ok := reg.Resolve(form.Input("cfg"), form.Variable{Type: form.VariableTypeCustom}); ok {
		t.Fatalf("custom variable resolved without component id: %q", got)
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("switch", 999, func(_ form.Element, variable form.Variable) bool {
		return variable.Type == form.VariableTypeBoolean
	})

	got, ok := reg.Resolve(form.Input("flag"), form.Variable{Type: form.VariableTypeBoolean})
	if !ok || got != "switch" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}

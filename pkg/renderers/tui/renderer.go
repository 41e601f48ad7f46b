package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype/duration"
	"github.com/goliatone/go-typeconfig/pkg/form"
	"github.com/goliatone/go-typeconfig/pkg/widgets"
)

// CustomWidget drives the editing of one custom variable. current holds the
// value seeded into the form; the returned value replaces it.
type CustomWidget func(ctx context.Context, driver PromptDriver, name string, variable form.Variable, current any) (any, error)

// Renderer walks a form schema in layout order and collects values through a
// PromptDriver.
type Renderer struct {
	driver  PromptDriver
	widgets *widgets.Registry
	custom  map[string]CustomWidget
}

// New constructs a TUI renderer with defaults (survey driver on stderr, the
// built-in widget registry, and the duration menu custom widget).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:  NewSurveyDriver(nil),
		widgets: widgets.NewRegistry(),
		custom: map[string]CustomWidget{
			duration.ComponentID: DurationMenu,
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Render prompts for every leaf of the schema layout in order. Values start
// from the schema defaults overlaid with seed. On error (including ErrAborted)
// no values are returned.
func (r *Renderer) Render(ctx context.Context, schema form.Schema, seed form.Values) (form.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	values := schema.Defaults()
	for name, value := range seed.Clone() {
		values[name] = value
	}

	for _, leaf := range schema.Leaves() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		variable := schema.Variables[leaf.Variable]
		widget, ok := r.widgets.Resolve(leaf, variable)
		if !ok {
			return nil, fmt.Errorf("%w: no widget for variable %q", ErrUnknownWidget, leaf.Variable)
		}
		value, err := r.prompt(ctx, widget, leaf.Variable, variable, values[leaf.Variable])
		if err != nil {
			return nil, err
		}
		values[leaf.Variable] = value
	}
	return values, nil
}

func (r *Renderer) prompt(ctx context.Context, widget, name string, variable form.Variable, current any) (any, error) {
	if custom, ok := r.custom[widget]; ok {
		return custom(ctx, r.driver, name, variable, current)
	}
	switch widget {
	case widgets.WidgetToggle:
		return r.promptBoolean(ctx, name, variable, current)
	case widgets.WidgetSelect:
		return r.promptEnum(ctx, name, variable, current)
	case widgets.WidgetNumber:
		return r.promptNumber(ctx, name, variable, current)
	case widgets.WidgetInput:
		return r.promptString(ctx, name, variable, current)
	default:
		return nil, fmt.Errorf("%w: %q for variable %q", ErrUnknownWidget, widget, name)
	}
}

func (r *Renderer) promptString(ctx context.Context, name string, variable form.Variable, current any) (any, error) {
	defaultVal, _ := current.(string)
	return r.driver.Input(ctx, InputConfig{
		Message: displayLabel(name, variable),
		Default: defaultVal,
	})
}

func (r *Renderer) promptBoolean(ctx context.Context, name string, variable form.Variable, current any) (any, error) {
	defaultVal, _ := current.(bool)
	return r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(name, variable),
		Default: defaultVal,
	})
}

func (r *Renderer) promptNumber(ctx context.Context, name string, variable form.Variable, current any) (any, error) {
	integer := variable.Type == form.VariableTypeInteger
	defaultStr := ""
	switch num := current.(type) {
	case int, int64, float64:
		defaultStr = fmt.Sprint(num)
	}

	help := "Enter a number, or leave empty to clear."
	if integer {
		help = "Enter a whole number, or leave empty to clear."
	}
	validate := func(input string) error {
		_, err := parseNumber(input, integer)
		return err
	}

	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message:   displayLabel(name, variable),
			Default:   defaultStr,
			Help:      help,
			Validator: validate,
		})
		if err != nil {
			return nil, err
		}
		parsed, err := parseNumber(input, integer)
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", name, err))
			continue
		}
		return parsed, nil
	}
}

// parseNumber reads an integer (int64) or float (float64) answer. Empty input
// clears the value and yields nil.
func parseNumber(input string, integer bool) (any, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}
	if integer {
		return strconv.ParseInt(trimmed, 10, 64)
	}
	return strconv.ParseFloat(trimmed, 64)
}

func (r *Renderer) promptEnum(ctx context.Context, name string, variable form.Variable, current any) (any, error) {
	options := stringifyEnum(variable.Enum)
	defaultIdx := indexOf(options, fmt.Sprint(current))

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(name, variable),
			Options:      options,
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", name))
			continue
		}
		return variable.Enum[idx], nil
	}
}

func displayLabel(name string, variable form.Variable) string {
	if label := strings.TrimSpace(variable.Label); label != "" {
		return label
	}
	return name
}

func stringifyEnum(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}

package columnsettings

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/form"
	"github.com/goliatone/go-typeconfig/pkg/validation"
)

// FormRenderer collects values for a form schema, starting from seed.
type FormRenderer interface {
	Render(ctx context.Context, schema form.Schema, seed form.Values) (form.Values, error)
}

// FormRendererFunc adapts a function into a FormRenderer.
type FormRendererFunc func(ctx context.Context, schema form.Schema, seed form.Values) (form.Values, error)

// Render implements FormRenderer.
func (fn FormRendererFunc) Render(ctx context.Context, schema form.Schema, seed form.Values) (form.Values, error) {
	return fn(ctx, schema, seed)
}

// ErrNoRenderer is returned by Edit when the editor was built without a
// renderer.
var ErrNoRenderer = errors.New("columnsettings: renderer is required")

// Option customises the editor.
type Option func(*Editor)

// WithRenderer sets the renderer used by Edit.
func WithRenderer(renderer FormRenderer) Option {
	return func(e *Editor) {
		e.renderer = renderer
	}
}

// WithLogger attaches a logger.
func WithLogger(logger logr.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// Editor runs editing sessions against the configurations held by a registry.
type Editor struct {
	registry *abstracttype.Registry
	renderer FormRenderer
	logger   logr.Logger
}

// New constructs an editor over registry.
func New(registry *abstracttype.Registry, options ...Option) *Editor {
	e := &Editor{
		registry: registry,
		logger:   logr.Discard(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Edit renders the settings form for typ seeded from current and returns the
// options determined from the submitted values. Submissions that do not
// conform to the form are rejected before the determine transform runs.
// current is never modified.
func (e *Editor) Edit(ctx context.Context, typ abstracttype.Type, current abstracttype.DisplayOptions) (abstracttype.DisplayOptions, error) {
	if ctx == nil {
		return nil, errors.New("columnsettings: context is required")
	}
	if e.renderer == nil {
		return nil, ErrNoRenderer
	}

	display, err := e.displayConfig(typ)
	if err != nil {
		return nil, err
	}

	seed := display.ConstructFormValues(clone(current))
	e.logger.V(1).Info("editing display options", "type", string(typ), "variables", len(display.Form.Variables))

	values, err := e.renderer.Render(ctx, display.Form, seed)
	if err != nil {
		e.logger.V(1).Info("editing session ended without submit", "type", string(typ), "error", err.Error())
		return nil, fmt.Errorf("columnsettings: render %q: %w", typ, err)
	}
	if err := validation.ValidateValues(display.Form, values).Err(); err != nil {
		return nil, fmt.Errorf("columnsettings: submitted values for %q: %w", typ, err)
	}

	return display.DetermineDisplayOptions(values), nil
}

// Preview returns the form values Edit would seed the renderer with.
func (e *Editor) Preview(typ abstracttype.Type, current abstracttype.DisplayOptions) (form.Values, error) {
	display, err := e.displayConfig(typ)
	if err != nil {
		return nil, err
	}
	return display.ConstructFormValues(clone(current)), nil
}

// Normalize round-trips current through the form without rendering, filling
// in defaults and dropping unknown keys the way an unedited submit would.
func (e *Editor) Normalize(typ abstracttype.Type, current abstracttype.DisplayOptions) (abstracttype.DisplayOptions, error) {
	display, err := e.displayConfig(typ)
	if err != nil {
		return nil, err
	}
	return display.RoundTrip(clone(current)), nil
}

func (e *Editor) displayConfig(typ abstracttype.Type) (abstracttype.DisplayConfig, error) {
	if e.registry == nil {
		return abstracttype.DisplayConfig{}, errors.New("columnsettings: registry is required")
	}
	display, err := e.registry.DisplayConfig(typ)
	if err != nil {
		return abstracttype.DisplayConfig{}, fmt.Errorf("columnsettings: %w", err)
	}
	if display.ConstructFormValues == nil || display.DetermineDisplayOptions == nil {
		return abstracttype.DisplayConfig{}, fmt.Errorf("columnsettings: type %q is missing a transform", typ)
	}
	return display, nil
}

func clone(options abstracttype.DisplayOptions) abstracttype.DisplayOptions {
	if options == nil {
		return nil
	}
	values := form.Values(options).Clone()
	return abstracttype.DisplayOptions(values)
}

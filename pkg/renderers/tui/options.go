package tui

import (
	"strings"

	"github.com/goliatone/go-typeconfig/pkg/widgets"
)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithWidgets replaces the widget registry used to resolve layout leaves.
func WithWidgets(reg *widgets.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.widgets = reg
		}
	}
}

// WithCustomWidget registers (or overrides) the widget driving a component id.
func WithCustomWidget(componentID string, widget CustomWidget) Option {
	return func(r *Renderer) {
		name := strings.TrimSpace(componentID)
		if name == "" || widget == nil {
			return
		}
		r.custom[name] = widget
	}
}

// Package typeconfig wires the built-in abstract types into a registry and
// exposes the editing session with sensible defaults, so callers can start
// from a single constructor call.
package typeconfig

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/abstracttype/duration"
	"github.com/goliatone/go-typeconfig/pkg/columnsettings"
)

// Option customises the built-in registry.
type Option func(*options)

type options struct {
	logger   logr.Logger
	duration []duration.Option
	extra    map[abstracttype.Type]abstracttype.Configuration
	order    []abstracttype.Type
}

// WithLogger sets the logger passed to the registry.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDurationDefaults overrides the unit bounds used when a duration column
// has no stored bound.
func WithDurationDefaults(max, min duration.Unit) Option {
	return func(o *options) {
		o.duration = append(o.duration, duration.WithDefaults(max, min))
	}
}

// WithType registers an additional abstract type next to the built-ins.
func WithType(typ abstracttype.Type, cfg abstracttype.Configuration) Option {
	return func(o *options) {
		if _, exists := o.extra[typ]; !exists {
			o.order = append(o.order, typ)
		}
		o.extra[typ] = cfg
	}
}

// NewRegistry returns a registry holding every built-in abstract type plus
// any types supplied through WithType.
func NewRegistry(opts ...Option) (*abstracttype.Registry, error) {
	cfg := options{
		logger: logr.Discard(),
		extra:  make(map[abstracttype.Type]abstracttype.Configuration),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	reg := abstracttype.NewRegistry(abstracttype.WithLogger(cfg.logger))
	if err := reg.Register(abstracttype.Duration, duration.New(cfg.duration...)); err != nil {
		return nil, fmt.Errorf("typeconfig: %w", err)
	}
	for _, typ := range cfg.order {
		if err := reg.Register(typ, cfg.extra[typ]); err != nil {
			return nil, fmt.Errorf("typeconfig: %w", err)
		}
	}
	return reg, nil
}

// MustNewRegistry panics when the built-in registry cannot be assembled.
func MustNewRegistry(opts ...Option) *abstracttype.Registry {
	reg, err := NewRegistry(opts...)
	if err != nil {
		panic(err)
	}
	return reg
}

// NewEditor builds an editing session over reg that renders with renderer.
func NewEditor(reg *abstracttype.Registry, renderer columnsettings.FormRenderer, logger logr.Logger) *columnsettings.Editor {
	return columnsettings.New(reg,
		columnsettings.WithRenderer(renderer),
		columnsettings.WithLogger(logger),
	)
}

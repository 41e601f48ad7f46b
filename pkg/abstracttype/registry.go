package abstracttype

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
)

var (
	// ErrUnknownType is returned when no configuration is registered for a type.
	ErrUnknownType = errors.New("abstracttype: unknown abstract type")
	// ErrDuplicateType is returned when a type is registered twice.
	ErrDuplicateType = errors.New("abstracttype: abstract type already registered")
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger routes registry diagnostics to the provided logger.
func WithLogger(logger logr.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Registry maps abstract types to their configurations. It is populated at
// start-up and read concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[Type]Configuration
	logger  logr.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		entries: make(map[Type]Configuration),
		logger:  logr.Discard(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Register adds a configuration for the abstract type. The configuration's
// form schema must validate and its icon must survive sanitising. A typed nil
// pointer passes the nil check, so its methods must tolerate a nil receiver.
func (r *Registry) Register(typ Type, cfg Configuration) error {
	typ = Type(strings.TrimSpace(string(typ)))
	if typ == "" {
		return errors.New("abstracttype: type is required")
	}
	if cfg == nil {
		return fmt.Errorf("abstracttype: configuration for %q is nil", typ)
	}

	icon := sanitizeIcon(cfg.Icon())
	if icon == "" {
		return fmt.Errorf("abstracttype: icon for %q is empty after sanitising", typ)
	}
	display := cfg.DisplayConfig()
	if display.DetermineDisplayOptions == nil || display.ConstructFormValues == nil {
		return fmt.Errorf("abstracttype: display config for %q is missing a transform", typ)
	}
	if err := display.Form.Validate(); err != nil {
		return fmt.Errorf("abstracttype: display form for %q: %w", typ, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[typ]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateType, typ)
	}
	r.entries[typ] = sanitized{Configuration: cfg, icon: icon}

	r.logger.V(1).Info("registered abstract type",
		"type", string(typ),
		"cell", string(cfg.Cell().Type),
		"variables", len(display.Form.Variables),
	)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(typ Type, cfg Configuration) {
	if err := r.Register(typ, cfg); err != nil {
		panic(err)
	}
}

// Get retrieves the configuration for an abstract type.
func (r *Registry) Get(typ Type) (Configuration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.entries[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	return cfg, nil
}

// MustGet panics if the type is missing.
func (r *Registry) MustGet(typ Type) Configuration {
	cfg, err := r.Get(typ)
	if err != nil {
		panic(err)
	}
	return cfg
}

// DisplayConfig builds a fresh display configuration for the abstract type.
func (r *Registry) DisplayConfig(typ Type) (DisplayConfig, error) {
	cfg, err := r.Get(typ)
	if err != nil {
		return DisplayConfig{}, err
	}
	return cfg.DisplayConfig(), nil
}

// Has reports whether a configuration is registered.
func (r *Registry) Has(typ Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[typ]
	return ok
}

// List returns the registered types sorted by name.
func (r *Registry) List() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]Type, 0, len(r.entries))
	for typ := range r.entries {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// sanitized overrides the icon with its sanitised form while delegating the
// rest of the contract, so optional interfaces are reached through Unwrap.
type sanitized struct {
	Configuration
	icon string
}

func (s sanitized) Icon() string { return s.icon }

// Unwrap returns the configuration as registered.
func (s sanitized) Unwrap() Configuration { return s.Configuration }

// Unwrap returns the configuration originally registered when cfg came from a
// Registry, otherwise cfg itself.
func Unwrap(cfg Configuration) Configuration {
	if wrapped, ok := cfg.(interface{ Unwrap() Configuration }); ok {
		return wrapped.Unwrap()
	}
	return cfg
}

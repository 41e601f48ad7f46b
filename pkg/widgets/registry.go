package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-typeconfig/pkg/form"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput  = "input"
	WidgetNumber = "number"
	WidgetToggle = "toggle"
	WidgetSelect = "select"
)

// Matcher decides whether a widget should render the supplied leaf element
// bound to variable.
type Matcher func(element form.Element, variable form.Variable) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for layout leaves based on explicit component ids
// or registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry only resolves explicit component ids.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a leaf element. Static elements resolve
// to their component id; custom variables never fall through to matchers since
// only their owning widget understands the payload.
func (r *Registry) Resolve(element form.Element, variable form.Variable) (string, bool) {
	if explicit := strings.TrimSpace(element.ComponentID); explicit != "" {
		return explicit, true
	}
	if variable.Type == form.VariableTypeCustom || r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(element, variable) {
			return entry.name, true
		}
	}
	return "", false
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(_ form.Element, variable form.Variable) bool {
		return variable.Type == form.VariableTypeBoolean
	})

	r.Register(WidgetSelect, 80, func(_ form.Element, variable form.Variable) bool {
		return variable.Type == form.VariableTypeOptions || len(variable.Enum) > 0
	})

	r.Register(WidgetNumber, 70, func(_ form.Element, variable form.Variable) bool {
		return variable.Type == form.VariableTypeInteger || variable.Type == form.VariableTypeFloat
	})

	r.Register(WidgetInput, 10, func(_ form.Element, variable form.Variable) bool {
		return variable.Type == form.VariableTypeString
	})
}

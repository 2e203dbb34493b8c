package pattern

import (
	"fmt"
	"slices"
	"sync"

	"harmonic/internal/logging"
)

// Registry holds named patterns in registration order.
// It is safe for concurrent use; every read returns copies.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	patterns map[string]Pattern
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		patterns: make(map[string]Pattern),
	}
}

type registerOptions struct {
	gateway     bool
	label       string
	description string
	category    Category
	overwrite   bool
}

// RegisterOption customizes a single Register call.
type RegisterOption func(*registerOptions)

// WithGateway tags the pattern as a gateway.
func WithGateway(gateway bool) RegisterOption {
	return func(o *registerOptions) { o.gateway = gateway }
}

// WithLabel sets the display label.
func WithLabel(label string) RegisterOption {
	return func(o *registerOptions) { o.label = label }
}

// WithDescription sets the free-text description.
func WithDescription(description string) RegisterOption {
	return func(o *registerOptions) { o.description = description }
}

// WithCategory fixes the category instead of inferring it.
func WithCategory(c Category) RegisterOption {
	return func(o *registerOptions) { o.category = c }
}

// WithOverwrite replaces an existing pattern of the same name. The
// replacement keeps the original position in registration order.
func WithOverwrite() RegisterOption {
	return func(o *registerOptions) { o.overwrite = true }
}

// Register adds a pattern. The sequence is copied.
// Returns ErrDuplicateName if name exists and WithOverwrite was not given,
// or ErrInvalidPattern if the name, sequence or category is invalid.
func (r *Registry) Register(name string, sequence []int, opts ...RegisterOption) error {
	if err := validate(name, sequence); err != nil {
		return err
	}

	var o registerOptions
	for _, opt := range opts {
		opt(&o)
	}

	category, err := ParseCategory(string(o.category))
	if err != nil {
		return err
	}
	if category == "" {
		category = inferCategory(sequence, o.gateway)
	}
	label := o.label
	if label == "" {
		label = name
	}

	p := Pattern{
		Name:        name,
		Sequence:    slices.Clone(sequence),
		IsGateway:   o.gateway,
		Label:       label,
		Description: o.description,
		Category:    category,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patterns[name]; exists {
		if !o.overwrite {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		logging.RegistryDebug("Overwriting pattern: %s", name)
	} else {
		r.order = append(r.order, name)
	}
	r.patterns[name] = p

	logging.RegistryDebug("Registered pattern: %s (category=%s, len=%d, gateway=%v)", name, category, len(sequence), o.gateway)
	return nil
}

// MustRegister registers a pattern and panics on error.
// Use this for static catalogs.
func (r *Registry) MustRegister(name string, sequence []int, opts ...RegisterOption) {
	if err := r.Register(name, sequence, opts...); err != nil {
		panic(fmt.Sprintf("failed to register pattern %s: %v", name, err))
	}
}

// Unregister removes a pattern and reports whether it existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patterns[name]; !exists {
		return false
	}
	delete(r.patterns, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })

	logging.RegistryDebug("Unregistered pattern: %s", name)
	return true
}

// Get returns a pattern by name. A missing name is reported by ok=false.
func (r *Registry) Get(name string) (Pattern, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patterns[name]
	if !ok {
		return Pattern{}, false
	}
	return p.clone(), true
}

// Has reports whether a pattern is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.patterns[name]
	return ok
}

// All returns every pattern in registration order.
func (r *Registry) All() []Pattern {
	return r.filter(func(Pattern) bool { return true })
}

// Gateways returns the gateway patterns in registration order.
func (r *Registry) Gateways() []Pattern {
	return r.filter(func(p Pattern) bool { return p.IsGateway })
}

// ByCategory returns the patterns of one category in registration order.
func (r *Registry) ByCategory(c Category) []Pattern {
	return r.filter(func(p Pattern) bool { return p.Category == c })
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func (r *Registry) filter(keep func(Pattern) bool) []Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Pattern, 0, len(r.order))
	for _, name := range r.order {
		p := r.patterns[name]
		if keep(p) {
			result = append(result, p.clone())
		}
	}
	return result
}

package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Predicate validates a raw value. The returned error message becomes the
// failure reason, prefixed with the variable name.
type Predicate func(value string) error

// Registry manages the named predicates a schema can reference.
type Registry struct {
	mu         sync.RWMutex
	predicates map[string]Predicate
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		predicates: make(map[string]Predicate),
	}
}

// Register adds a predicate to the registry.
// If a predicate with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predicates[name] = fn
}

// Lookup returns the predicate registered under name.
func (r *Registry) Lookup(name string) (Predicate, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.predicates[name]
	return fn, ok
}

// Names returns the registered predicate names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.predicates))
	for name := range r.predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy, so callers can extend the built-ins
// without mutating DefaultRegistry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for name, fn := range r.predicates {
		c.predicates[name] = fn
	}
	return c
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the shared registry holding the built-in predicates.
// Validate uses it unless WithRegistry is given.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// UnresolvedError lists predicate names a Config references but the registry lacks.
type UnresolvedError struct {
	Refs []string // "VAR: name"
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unknown validators: %s", strings.Join(e.Refs, ", "))
}

// Unwrap makes an unresolved schema match ErrInvalidConfig.
func (e *UnresolvedError) Unwrap() error {
	return ErrInvalidConfig
}

// Resolve checks that every predicate named by the config exists in reg
// (DefaultRegistry when reg is nil). It is meant to run right after loading.
func (c *Config) Resolve(reg *Registry) error {
	if c == nil {
		return ErrInvalidConfig
	}
	if reg == nil {
		reg = DefaultRegistry()
	}
	var missing []string
	for _, v := range c.Variables {
		for _, name := range v.Spec.Validate {
			if _, ok := reg.Lookup(name); !ok {
				missing = append(missing, v.Name+": "+name)
			}
		}
	}
	if len(missing) > 0 {
		return &UnresolvedError{Refs: missing}
	}
	return nil
}

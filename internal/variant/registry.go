package variant

import (
	"fmt"
	"sync"
)

// Registry maps type and constructor names to their specs. It is
// process-wide, append-only state: populated while data declarations are
// compiled, read-only once a unit finishes compiling. A single RWMutex
// serializes writers; registration is never revoked, so no finer-grained
// coordination is needed.
//
// Constructor names share one namespace across all registered types because
// pattern matching resolves a bare constructor name with no type context.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*VariantSpec
	ctors map[string]*ConstructorSpec
}

func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*VariantSpec),
		ctors: make(map[string]*ConstructorSpec),
	}
}

// Register adds a spec to the registry. It fails if the type name or any
// constructor name is already taken; the registry is left unchanged on
// failure.
func (r *Registry) Register(spec *VariantSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.types[spec.TypeName]; ok {
		return fmt.Errorf("data type %s already declared (unit %s)", spec.TypeName, prev.UnitID)
	}
	for _, c := range spec.Constructors {
		if prev, ok := r.ctors[c.Name]; ok {
			return &DuplicateConstructorError{TypeName: prev.Type().TypeName, Ctor: c.Name}
		}
	}

	r.types[spec.TypeName] = spec
	for _, c := range spec.Constructors {
		r.ctors[c.Name] = c
	}
	return nil
}

// LookupType resolves a declared type name.
func (r *Registry) LookupType(name string) (*VariantSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.types[name]
	return s, ok
}

// LookupConstructor resolves a constructor name to its spec.
func (r *Registry) LookupConstructor(name string) (*ConstructorSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.ctors[name]
	return c, ok
}

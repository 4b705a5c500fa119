package registry

import (
	"reflect"

	"github.com/vk/fabricgo/internal/component"
)

// Registry holds all component definitions and registered Go factories for
// a single application instance. It is not safe for concurrent use; the
// bootstrap is a single-threaded pass.
type Registry struct {
	definitions map[string]*component.Definition
	order       []string

	factories map[string]*RegisteredFactory

	// capCache memoizes capability matches per (name, capability) pair.
	// Derived metadata only: cleared wholesale by ClearMetadataCache and
	// per-name on re-registration.
	capCache map[capKey]bool

	comparator func(a, b any) int
}

type capKey struct {
	name       string
	capability reflect.Type
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		definitions: make(map[string]*component.Definition),
		factories:   make(map[string]*RegisteredFactory),
		capCache:    make(map[capKey]bool),
	}
}

// Register inserts a definition. Registering under an existing name
// overwrites the previous definition but keeps its position in the
// declaration order.
func (r *Registry) Register(def *component.Definition) {
	if def == nil || def.Name == "" {
		panic("registry: definition must have a name")
	}
	if _, exists := r.definitions[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.invalidateName(def.Name)
	r.definitions[def.Name] = def
}

// Definition returns the definition for a name, or nil if absent.
func (r *Registry) Definition(name string) *component.Definition {
	return r.definitions[name]
}

// Contains reports whether a definition exists for the name.
func (r *Registry) Contains(name string) bool {
	_, ok := r.definitions[name]
	return ok
}

// Names returns all definition names in declaration order. The returned
// slice is a copy; callers may mutate the registry while iterating it.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// NamesImplementing returns, in declaration order, the names of all
// definitions whose resolved type implements the given capability
// interface. Definitions without a resolved type never match: inspecting
// them would require instantiation, which is exactly what bootstrap
// discovery must avoid.
func (r *Registry) NamesImplementing(capability reflect.Type) []string {
	var out []string
	for _, name := range r.order {
		if r.Implements(name, capability) {
			out = append(out, name)
		}
	}
	return out
}

// Implements reports whether the named definition's resolved type
// implements the capability interface.
func (r *Registry) Implements(name string, capability reflect.Type) bool {
	key := capKey{name: name, capability: capability}
	if match, ok := r.capCache[key]; ok {
		return match
	}
	def := r.definitions[name]
	match := def != nil && def.Type != nil && def.Type.Implements(capability)
	r.capCache[key] = match
	return match
}

// ClearMetadataCache drops all derived metadata. Bootstrap extensions may
// rewrite definitions that earlier phases already inspected, so the
// orchestrator calls this after the mutation phases complete.
func (r *Registry) ClearMetadataCache() {
	r.capCache = make(map[capKey]bool)
}

func (r *Registry) invalidateName(name string) {
	for key := range r.capCache {
		if key.name == name {
			delete(r.capCache, key)
		}
	}
}

// SetDependencyComparator installs a custom comparator used by the
// bootstrap ordering resolver instead of the default order-key comparison.
// cmp must return a negative value when a sorts before b.
func (r *Registry) SetDependencyComparator(cmp func(a, b any) int) {
	r.comparator = cmp
}

// DependencyComparator returns the installed comparator, or nil.
func (r *Registry) DependencyComparator() func(a, b any) int {
	return r.comparator
}

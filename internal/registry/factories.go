package registry

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vk/fabricgo/internal/component"
)

// RegisteredFactory holds the compiled Go parts behind a manifest factory
// identifier: the constructor and the type it produces.
type RegisteredFactory struct {
	Type reflect.Type
	New  component.Factory
}

// Module is the interface that all compiled-in modules implement to be
// registered. A module typically registers its factories and any default
// infrastructure definitions it ships.
type Module interface {
	Register(r *Registry)
}

// RegisterFactory registers a Go factory under a manifest identifier.
// Duplicate identifiers are a programmer error.
func (r *Registry) RegisterFactory(name string, f *RegisteredFactory) {
	if f == nil || f.New == nil {
		panic(fmt.Sprintf("factory '%s' must have a constructor", name))
	}
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("factory with name '%s' already registered", name))
	}
	slog.Debug("Registering component factory.", "name", name)
	r.factories[name] = f
}

// Factory returns the registered factory for an identifier.
func (r *Registry) Factory(name string) (*RegisteredFactory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

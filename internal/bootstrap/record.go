package bootstrap

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/registry"
	"github.com/vk/fabricgo/internal/store"
)

// Capability interfaces as reflect types, for registry queries against
// definitions that have not been instantiated yet.
var (
	registryMutatorType   = reflect.TypeOf((*registry.RegistryMutator)(nil)).Elem()
	factoryConfigurerType = reflect.TypeOf((*registry.FactoryConfigurer)(nil)).Elem()
	interceptorType       = reflect.TypeOf((*component.InstanceInterceptor)(nil)).Elem()
	orderedType           = reflect.TypeOf((*component.Ordered)(nil)).Elem()
	priorityOrderedType   = reflect.TypeOf((*component.PriorityOrdered)(nil)).Elem()
)

// tier is the derived ordering tier of a realized extension.
type tier int

const (
	tierHighest tier = iota
	tierOrdered
	tierUnordered
)

// record pairs a realized extension instance with its derived ordering
// metadata. Tiers are recomputed from the instance every time one is
// realized, never stored anywhere else.
type record struct {
	name     string
	instance any
	tier     tier
	key      int
}

// newRecord derives the ordering tier and key from the instance's
// capabilities.
func newRecord(name string, instance any) record {
	r := record{name: name, instance: instance, tier: tierUnordered}
	if o, ok := instance.(component.Ordered); ok {
		r.tier = tierOrdered
		r.key = o.OrderKey()
		if _, ok := instance.(component.PriorityOrdered); ok {
			r.tier = tierHighest
		}
	}
	return r
}

// forceExtension realizes a component through the store and asserts the
// expected capability. This is the one place bootstrap deliberately
// triggers eager creation: an extension must exist before it can run.
func forceExtension[T any](ctx context.Context, st *store.Store, name string) (T, error) {
	var zero T
	want := reflect.TypeOf((*T)(nil)).Elem().String()

	inst, err := st.GetOrCreate(ctx, name)
	if err != nil {
		return zero, &DefinitionError{Name: name, Want: want, Err: err}
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, &DefinitionError{Name: name, Want: want, Err: fmt.Errorf("instance has type %T", inst)}
	}
	return typed, nil
}

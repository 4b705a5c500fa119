package bootstrap

import (
	"context"
	"reflect"

	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/registry"
)

// recordingMutator is an unordered-tier registry mutator that appends its
// id to a shared log on every hook.
type recordingMutator struct {
	id       string
	log      *[]string
	onMutate func(ctx context.Context, reg *registry.Registry) error
}

func (m *recordingMutator) MutateRegistry(ctx context.Context, reg *registry.Registry) error {
	*m.log = append(*m.log, m.id)
	if m.onMutate != nil {
		return m.onMutate(ctx, reg)
	}
	return nil
}

func (m *recordingMutator) ConfigureFactory(context.Context, *registry.Registry) error {
	*m.log = append(*m.log, m.id+"/configure")
	return nil
}

// orderedMutator adds an explicit ordering key.
type orderedMutator struct {
	recordingMutator
	key int
}

func (m *orderedMutator) OrderKey() int { return m.key }

// priorityMutator belongs to the highest tier.
type priorityMutator struct {
	orderedMutator
}

func (m *priorityMutator) IsPriorityOrdered() {}

// recordingConfigurer is an unordered-tier factory configurer.
type recordingConfigurer struct {
	id  string
	log *[]string
}

func (c *recordingConfigurer) ConfigureFactory(context.Context, *registry.Registry) error {
	*c.log = append(*c.log, c.id+"/configure")
	return nil
}

type orderedConfigurer struct {
	recordingConfigurer
	key int
}

func (c *orderedConfigurer) OrderKey() int { return c.key }

type priorityConfigurer struct {
	orderedConfigurer
}

func (c *priorityConfigurer) IsPriorityOrdered() {}

// recordingInterceptor logs every hook invocation.
type recordingInterceptor struct {
	id    string
	calls *[]string
}

func (i *recordingInterceptor) BeforeCreate(_ context.Context, instance any, name string) (any, error) {
	*i.calls = append(*i.calls, i.id+"/before/"+name)
	return instance, nil
}

func (i *recordingInterceptor) AfterCreate(_ context.Context, instance any, name string) (any, error) {
	*i.calls = append(*i.calls, i.id+"/after/"+name)
	return instance, nil
}

type orderedInterceptor struct {
	recordingInterceptor
	key int
}

func (i *orderedInterceptor) OrderKey() int { return i.key }

type priorityInterceptor struct {
	orderedInterceptor
}

func (i *priorityInterceptor) IsPriorityOrdered() {}

// mergeInterceptor is merge-aware on top of recording.
type mergeInterceptor struct {
	orderedInterceptor
	merged *[]string
}

func (i *mergeInterceptor) PostProcessDefinition(_ context.Context, def *component.Definition) {
	*i.merged = append(*i.merged, i.id+"/merge/"+def.Name)
}

// registerInstance registers a definition whose factory returns a fixed,
// pre-built instance. The definition's resolved type is the instance's
// concrete type, so capability discovery sees exactly what the instance
// implements.
func registerInstance(reg *registry.Registry, name string, instance any) {
	reg.Register(&component.Definition{
		Name: name,
		Type: reflect.TypeOf(instance),
		Factory: func(context.Context, component.Resolver) (any, error) {
			return instance, nil
		},
	})
}

// definitionWithFixedInstance builds, without registering, a definition
// whose factory returns the given instance.
func definitionWithFixedInstance(name string, instance any) *component.Definition {
	return &component.Definition{
		Name: name,
		Type: reflect.TypeOf(instance),
		Factory: func(context.Context, component.Resolver) (any, error) {
			return instance, nil
		},
	}
}

// definitionWithWrongFactory declares the instance's type but wires a
// factory that produces a value without any capabilities.
func definitionWithWrongFactory(name string, instance any) *component.Definition {
	return &component.Definition{
		Name: name,
		Type: reflect.TypeOf(instance),
		Factory: func(context.Context, component.Resolver) (any, error) {
			return struct{}{}, nil
		},
	}
}

// registerInfrastructure is registerInstance with the infrastructure role.
func registerInfrastructure(reg *registry.Registry, name string, instance any) {
	reg.Register(&component.Definition{
		Name: name,
		Type: reflect.TypeOf(instance),
		Role: component.RoleInfrastructure,
		Factory: func(context.Context, component.Resolver) (any, error) {
			return instance, nil
		},
	})
}

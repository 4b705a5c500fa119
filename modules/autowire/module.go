// Package autowire provides the injection interceptor: a merge-aware
// instance interceptor that populates struct fields of freshly created
// components. Fields tagged `fab:"name"` receive the named component from
// the store; fields tagged `prop:"key"` receive the matching definition
// property, converted to the field's Go type.
package autowire

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/registry"
)

const (
	// ComponentName is the definition name of the interceptor.
	ComponentName = "autowireInterceptor"
	// FactoryName is the manifest identifier of the interceptor's factory.
	FactoryName = "NewAutowireInterceptor"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the interceptor's factory and its default
// infrastructure definition.
func (m *Module) Register(r *registry.Registry) {
	factory := &registry.RegisteredFactory{
		Type: reflect.TypeOf(&Interceptor{}),
		New: func(ctx context.Context, res component.Resolver) (any, error) {
			return New(res), nil
		},
	}
	r.RegisterFactory(FactoryName, factory)
	r.Register(&component.Definition{
		Name:        ComponentName,
		Type:        factory.Type,
		FactoryName: FactoryName,
		Factory:     factory.New,
		Role:        component.RoleInfrastructure,
	})
}

// Interceptor injects tagged struct fields on creation. The store appears
// twice in its life: once as the resolver handed to its factory, and once
// as the caller of its hooks.
type Interceptor struct {
	resolver component.Resolver
	defs     map[string]*component.Definition
}

// New creates an interceptor that resolves dependencies through res.
func New(res component.Resolver) *Interceptor {
	return &Interceptor{resolver: res, defs: make(map[string]*component.Definition)}
}

// IsPriorityOrdered marks the interceptor for the highest chain tier.
func (i *Interceptor) IsPriorityOrdered() {}

// OrderKey returns the interceptor's position within its tier.
func (i *Interceptor) OrderKey() int { return 100 }

// PostProcessDefinition implements component.MergeAware. It records the
// definition so BeforeCreate can bind properties. The map write makes a
// second invocation for the same definition a no-op, which matters because
// merge-aware interceptors sit twice in the chain.
func (i *Interceptor) PostProcessDefinition(_ context.Context, def *component.Definition) {
	i.defs[def.Name] = def
}

// BeforeCreate implements component.InstanceInterceptor. Fields that are
// already non-zero are skipped, so a repeated pass over the same instance
// changes nothing.
func (i *Interceptor) BeforeCreate(ctx context.Context, instance any, name string) (any, error) {
	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return instance, nil
	}
	elem := v.Elem()
	if elem.Kind() != reflect.Struct {
		return instance, nil
	}

	logger := ctxlog.FromContext(ctx)
	structType := elem.Type()
	def := i.defs[name]

	for fi := 0; fi < structType.NumField(); fi++ {
		field := structType.Field(fi)
		fieldVal := elem.Field(fi)
		if !fieldVal.CanSet() || !fieldVal.IsZero() {
			continue
		}

		if depName := field.Tag.Get("fab"); depName != "" && depName != "-" {
			dep, err := i.resolver.GetOrCreate(ctx, depName)
			if err != nil {
				return nil, fmt.Errorf("autowire: injecting '%s' into field %s of component '%s': %w", depName, field.Name, name, err)
			}
			depVal := reflect.ValueOf(dep)
			if !depVal.Type().AssignableTo(field.Type) {
				return nil, fmt.Errorf("autowire: component '%s' (%T) is not assignable to field %s of '%s'", depName, dep, field.Name, name)
			}
			fieldVal.Set(depVal)
			logger.Debug("Injected component dependency.", "component", name, "field", field.Name, "dependency", depName)
			continue
		}

		if key := field.Tag.Get("prop"); key != "" && def != nil {
			val, ok := def.Properties[key]
			if !ok {
				continue
			}
			if err := bindValue(val, fieldVal.Addr().Interface()); err != nil {
				return nil, fmt.Errorf("autowire: binding property '%s' to field %s of component '%s': %w", key, field.Name, name, err)
			}
			logger.Debug("Bound property value.", "component", name, "field", field.Name, "property", key)
		}
	}

	return instance, nil
}

// AfterCreate implements component.InstanceInterceptor.
func (i *Interceptor) AfterCreate(_ context.Context, instance any, _ string) (any, error) {
	return instance, nil
}

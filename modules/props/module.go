// Package props provides the property placeholder resolver: a highest-tier
// registry mutator that expands ${key} references inside component
// properties before anything is instantiated. Source values come from the
// resolver's own definition properties, typically declared in a manifest.
package props

import (
	"context"
	"os"
	"reflect"

	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

const (
	// ComponentName is the definition name of the resolver.
	ComponentName = "propertyPlaceholderResolver"
	// FactoryName is the manifest identifier of the resolver's factory.
	FactoryName = "NewPropertyResolver"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the resolver's factory and its default
// infrastructure definition. A manifest declaring the same component name
// overwrites the definition, usually to attach source properties.
func (m *Module) Register(r *registry.Registry) {
	factory := &registry.RegisteredFactory{
		Type: reflect.TypeOf(&Resolver{}),
		New: func(ctx context.Context, _ component.Resolver) (any, error) {
			return &Resolver{}, nil
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

// Resolver expands ${key} placeholders in string-typed properties across
// all registered definitions. Unknown keys are left untouched so that
// later configurers can still see the raw placeholder.
type Resolver struct {
	replaced int
}

// IsPriorityOrdered marks the resolver for the highest bootstrap tier.
func (p *Resolver) IsPriorityOrdered() {}

// OrderKey places the resolver after the component scanner within the
// highest tier, so scanned definitions get their placeholders expanded too.
func (p *Resolver) OrderKey() int { return 10 }

// MutateRegistry implements registry.RegistryMutator.
func (p *Resolver) MutateRegistry(ctx context.Context, reg *registry.Registry) error {
	sources := map[string]cty.Value{}
	if own := reg.Definition(ComponentName); own != nil {
		sources = own.Properties
	}

	for _, name := range reg.Names() {
		if name == ComponentName {
			continue
		}
		def := reg.Definition(name)
		for key, val := range def.Properties {
			if val.Type() != cty.String || val.IsNull() {
				continue
			}
			expanded := os.Expand(val.AsString(), func(ref string) string {
				src, ok := sources[ref]
				if !ok || src.IsNull() || src.Type() != cty.String {
					return "${" + ref + "}"
				}
				p.replaced++
				return src.AsString()
			})
			if expanded != val.AsString() {
				def.Properties[key] = cty.StringVal(expanded)
			}
		}
	}

	ctxlog.FromContext(ctx).Debug("Property placeholders resolved.", "replacements", p.replaced)
	return nil
}

// ConfigureFactory implements registry.FactoryConfigurer. All the work
// happens during mutation; the second hook only reports.
func (p *Resolver) ConfigureFactory(ctx context.Context, _ *registry.Registry) error {
	ctxlog.FromContext(ctx).Debug("Property resolver finished.", "replacements", p.replaced)
	return nil
}

// Package configscan provides the component scanner: a highest-tier
// registry mutator that loads additional component manifests from a scan
// path during the mutation phase. Definitions it registers may themselves
// be registry mutators, which the orchestrator's fixed-point loop then
// picks up within the same bootstrap run.
package configscan

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/hcl"
	"github.com/vk/fabricgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

const (
	// ComponentName is the definition name of the scanner.
	ComponentName = "componentScanner"
	// FactoryName is the manifest identifier of the scanner's factory.
	FactoryName = "NewComponentScanner"
)

// Module implements the registry.Module interface for this package. Path
// is the compiled-in default scan path; a "path" property on the
// scanner's definition overrides it.
type Module struct {
	Path string
}

// Register registers the scanner's factory and its default infrastructure
// definition.
func (m *Module) Register(r *registry.Registry) {
	factory := &registry.RegisteredFactory{
		Type: reflect.TypeOf(&Scanner{}),
		New: func(ctx context.Context, _ component.Resolver) (any, error) {
			return &Scanner{path: m.Path}, nil
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

// Scanner loads extra component manifests during registry mutation.
type Scanner struct {
	path    string
	scanned int
}

// IsPriorityOrdered marks the scanner for the highest bootstrap tier: it
// must register definitions before anything else inspects them.
func (s *Scanner) IsPriorityOrdered() {}

// OrderKey places the scanner first within the highest tier.
func (s *Scanner) OrderKey() int { return 0 }

// MutateRegistry implements registry.RegistryMutator.
func (s *Scanner) MutateRegistry(ctx context.Context, reg *registry.Registry) error {
	logger := ctxlog.FromContext(ctx)

	path := s.path
	if own := reg.Definition(ComponentName); own != nil {
		if v, ok := own.Properties["path"]; ok && v.Type() == cty.String && !v.IsNull() {
			path = v.AsString()
		}
	}
	if path == "" {
		logger.Debug("No scan path configured; component scan skipped.")
		return nil
	}

	model, err := hcl.NewLoader().Load(ctx, path)
	if err != nil {
		return fmt.Errorf("scanning components from %q: %w", path, err)
	}
	reg.PopulateFromModel(model)
	s.scanned = len(model.Components)

	logger.Info("Scanned additional component definitions.", "path", path, "count", s.scanned)
	return nil
}

// ConfigureFactory implements registry.FactoryConfigurer.
func (s *Scanner) ConfigureFactory(ctx context.Context, _ *registry.Registry) error {
	ctxlog.FromContext(ctx).Debug("Component scanner finished.", "scanned", s.scanned)
	return nil
}

package registry

import (
	"context"
)

// FactoryConfigurer is the capability of a bootstrap extension that
// adjusts finalized component definitions. It runs after every definition
// has been registered and before any ordinary component is instantiated.
type FactoryConfigurer interface {
	ConfigureFactory(ctx context.Context, reg *Registry) error
}

// RegistryMutator is the capability of a bootstrap extension that may add
// or rewrite component definitions. Every RegistryMutator is also a
// FactoryConfigurer; its MutateRegistry hook runs first, during the
// mutation phase, and its ConfigureFactory hook runs afterwards with all
// other configurers.
type RegistryMutator interface {
	FactoryConfigurer
	MutateRegistry(ctx context.Context, reg *Registry) error
}

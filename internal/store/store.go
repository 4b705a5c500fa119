package store

import (
	"context"

	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/registry"
)

// Store realizes and caches singleton component instances for one
// application. It owns the interceptor chain exclusively; the bootstrap
// orchestrator only appends to it. Not safe for concurrent use.
type Store struct {
	reg        *registry.Registry
	singletons map[string]any
	inProgress map[string]struct{}
	chain      []component.InstanceInterceptor
}

// New creates an empty store backed by the given registry.
func New(reg *registry.Registry) *Store {
	return &Store{
		reg:        reg,
		singletons: make(map[string]any),
		inProgress: make(map[string]struct{}),
	}
}

var _ component.Resolver = (*Store)(nil)

// GetOrCreate returns the singleton instance for name, creating it if
// absent. Creation order: depends_on components, the factory, merge-aware
// definition hooks, BeforeCreate hooks, then AfterCreate hooks. The
// singleton is cached before AfterCreate runs so that after-hooks observe
// a component the store already considers built.
func (s *Store) GetOrCreate(ctx context.Context, name string) (any, error) {
	if inst, ok := s.singletons[name]; ok {
		return inst, nil
	}
	if _, creating := s.inProgress[name]; creating {
		return nil, CreationCycleError{Name: name}
	}

	def := s.reg.Definition(name)
	if def == nil {
		return nil, UnknownComponentError{Name: name}
	}
	if def.Factory == nil {
		return nil, NoFactoryError{Name: name}
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Creating component.", "name", name, "role", def.Role.String())

	s.inProgress[name] = struct{}{}
	defer delete(s.inProgress, name)

	for _, dep := range def.DependsOn {
		if _, err := s.GetOrCreate(ctx, dep); err != nil {
			return nil, FactoryError{Name: name, Err: err}
		}
	}

	inst, err := def.Factory(ctx, s)
	if err != nil {
		return nil, FactoryError{Name: name, Err: err}
	}

	for _, ic := range s.chain {
		if ma, ok := ic.(component.MergeAware); ok {
			ma.PostProcessDefinition(ctx, def)
		}
	}

	for _, ic := range s.chain {
		next, err := ic.BeforeCreate(ctx, inst, name)
		if err != nil {
			return nil, FactoryError{Name: name, Err: err}
		}
		if next != nil {
			inst = next
		}
	}

	s.singletons[name] = inst

	for _, ic := range s.chain {
		next, err := ic.AfterCreate(ctx, inst, name)
		if err != nil {
			delete(s.singletons, name)
			return nil, FactoryError{Name: name, Err: err}
		}
		if next != nil {
			inst = next
		}
	}
	s.singletons[name] = inst

	return inst, nil
}

// Get returns an already-realized singleton without triggering creation.
func (s *Store) Get(name string) (any, bool) {
	inst, ok := s.singletons[name]
	return inst, ok
}

// AppendInterceptor appends an interceptor to the end of the chain. The
// chain is append-only; the bootstrap registration phase controls order by
// controlling append order.
func (s *Store) AppendInterceptor(ic component.InstanceInterceptor) {
	s.chain = append(s.chain, ic)
}

// InterceptorCount returns the current chain length.
func (s *Store) InterceptorCount() int {
	return len(s.chain)
}

// Interceptors returns a copy of the chain, in order.
func (s *Store) Interceptors() []component.InstanceInterceptor {
	out := make([]component.InstanceInterceptor, len(s.chain))
	copy(out, s.chain)
	return out
}

// SingletonCount returns the number of realized instances.
func (s *Store) SingletonCount() int {
	return len(s.singletons)
}

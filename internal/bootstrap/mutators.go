package bootstrap

import (
	"context"
	"fmt"

	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/registry"
	"github.com/vk/fabricgo/internal/store"
)

// RunBootstrapExtensions drives the registry mutation and factory
// configuration phases.
//
// Externally supplied registry mutators run first, in input order. Then
// mutators discovered in the registry run in three rounds: the highest
// tier, the ordered tier, and finally a fixed-point loop that re-queries
// the registry until a full pass discovers nothing new, mandatory because
// any mutator may register brand-new mutator definitions mid-loop. Every
// mutator runs exactly once; the processed set is the record of that.
//
// Once no new mutator appears, the second hook (ConfigureFactory) of every
// mutator runs in the order already established, followed by the external
// plain configurers in input order, followed by configurers discovered in
// the registry, tiered the same way but in a single pass.
func RunBootstrapExtensions(ctx context.Context, reg *registry.Registry, st *store.Store, external []registry.FactoryConfigurer) error {
	logger := ctxlog.FromContext(ctx)
	processed := make(map[string]struct{})

	// allMutators accumulates every registry mutator that has run, in
	// invocation order, so their configure hooks replay in that order.
	var allMutators []record
	var externalConfigurers []record

	for i, ext := range external {
		name := fmt.Sprintf("external[%d]", i)
		if mutator, ok := ext.(registry.RegistryMutator); ok {
			if err := mutator.MutateRegistry(ctx, reg); err != nil {
				return &MutationError{Name: name, Op: opMutateRegistry, Err: err}
			}
			allMutators = append(allMutators, newRecord(name, mutator))
		} else {
			externalConfigurers = append(externalConfigurers, newRecord(name, ext))
		}
	}
	logger.Debug("External bootstrap extensions partitioned.",
		"mutators", len(allMutators), "configurers", len(externalConfigurers))

	// Round A: highest-tier mutators from the registry.
	var current []record
	for _, name := range reg.NamesImplementing(registryMutatorType) {
		if _, done := processed[name]; done {
			continue
		}
		if !reg.Implements(name, priorityOrderedType) {
			continue
		}
		mutator, err := forceExtension[registry.RegistryMutator](ctx, st, name)
		if err != nil {
			return err
		}
		current = append(current, newRecord(name, mutator))
		processed[name] = struct{}{}
	}
	sortRecords(current, reg)
	if err := invokeMutators(ctx, reg, current); err != nil {
		return err
	}
	allMutators = append(allMutators, current...)
	logger.Debug("Highest-tier registry mutators finished.", "count", len(current))

	// Round B: ordered-tier mutators, including any the first round just
	// registered.
	current = nil
	for _, name := range reg.NamesImplementing(registryMutatorType) {
		if _, done := processed[name]; done {
			continue
		}
		if !reg.Implements(name, orderedType) {
			continue
		}
		mutator, err := forceExtension[registry.RegistryMutator](ctx, st, name)
		if err != nil {
			return err
		}
		current = append(current, newRecord(name, mutator))
		processed[name] = struct{}{}
	}
	sortRecords(current, reg)
	if err := invokeMutators(ctx, reg, current); err != nil {
		return err
	}
	allMutators = append(allMutators, current...)
	logger.Debug("Ordered-tier registry mutators finished.", "count", len(current))

	// Round C: everything else, repeated until a full pass over the
	// registry discovers no unprocessed mutator.
	for rounds := 0; ; rounds++ {
		current = nil
		for _, name := range reg.NamesImplementing(registryMutatorType) {
			if _, done := processed[name]; done {
				continue
			}
			mutator, err := forceExtension[registry.RegistryMutator](ctx, st, name)
			if err != nil {
				return err
			}
			current = append(current, newRecord(name, mutator))
			processed[name] = struct{}{}
		}
		if len(current) == 0 {
			logger.Debug("Registry mutator fixed point reached.", "extra_rounds", rounds)
			break
		}
		sortRecords(current, reg)
		if err := invokeMutators(ctx, reg, current); err != nil {
			return err
		}
		allMutators = append(allMutators, current...)
	}

	// Configure hooks: mutators first, in the order they mutated, then the
	// external plain configurers in input order. Externals arrived outside
	// the registry and have no defined tier relative to discovered ones,
	// so they are never re-sorted.
	if err := invokeConfigurers(ctx, reg, allMutators); err != nil {
		return err
	}
	if err := invokeConfigurers(ctx, reg, externalConfigurers); err != nil {
		return err
	}

	// Remaining configurers declared in the registry, single pass: highest
	// tier sorted, ordered tier sorted, unordered in declaration order.
	var highest []record
	var orderedNames, unorderedNames []string
	for _, name := range reg.NamesImplementing(factoryConfigurerType) {
		if _, done := processed[name]; done {
			continue
		}
		switch {
		case reg.Implements(name, priorityOrderedType):
			configurer, err := forceExtension[registry.FactoryConfigurer](ctx, st, name)
			if err != nil {
				return err
			}
			highest = append(highest, newRecord(name, configurer))
		case reg.Implements(name, orderedType):
			orderedNames = append(orderedNames, name)
		default:
			unorderedNames = append(unorderedNames, name)
		}
	}

	sortRecords(highest, reg)
	if err := invokeConfigurers(ctx, reg, highest); err != nil {
		return err
	}

	ordered := make([]record, 0, len(orderedNames))
	for _, name := range orderedNames {
		configurer, err := forceExtension[registry.FactoryConfigurer](ctx, st, name)
		if err != nil {
			return err
		}
		ordered = append(ordered, newRecord(name, configurer))
	}
	sortRecords(ordered, reg)
	if err := invokeConfigurers(ctx, reg, ordered); err != nil {
		return err
	}

	unordered := make([]record, 0, len(unorderedNames))
	for _, name := range unorderedNames {
		configurer, err := forceExtension[registry.FactoryConfigurer](ctx, st, name)
		if err != nil {
			return err
		}
		unordered = append(unordered, newRecord(name, configurer))
	}
	if err := invokeConfigurers(ctx, reg, unordered); err != nil {
		return err
	}

	// Mutators may have rewritten definitions that earlier discovery
	// already inspected.
	reg.ClearMetadataCache()
	logger.Debug("Bootstrap extension phases finished.",
		"mutators", len(allMutators),
		"configurers", len(externalConfigurers)+len(highest)+len(ordered)+len(unordered))
	return nil
}

func invokeMutators(ctx context.Context, reg *registry.Registry, recs []record) error {
	for _, rec := range recs {
		mutator := rec.instance.(registry.RegistryMutator)
		if err := mutator.MutateRegistry(ctx, reg); err != nil {
			return &MutationError{Name: rec.name, Op: opMutateRegistry, Err: err}
		}
	}
	return nil
}

func invokeConfigurers(ctx context.Context, reg *registry.Registry, recs []record) error {
	for _, rec := range recs {
		configurer := rec.instance.(registry.FactoryConfigurer)
		if err := configurer.ConfigureFactory(ctx, reg); err != nil {
			return &MutationError{Name: rec.name, Op: opConfigureFactory, Err: err}
		}
	}
	return nil
}

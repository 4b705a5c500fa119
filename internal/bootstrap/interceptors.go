package bootstrap

import (
	"context"

	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/event"
	"github.com/vk/fabricgo/internal/registry"
	"github.com/vk/fabricgo/internal/store"
)

// RegisterInterceptors discovers every instance interceptor declared in
// the registry and installs the store's interception chain: the creation
// fence, then the highest tier (sorted), the ordered tier (sorted), the
// unordered tier (declaration order), the merge-aware interceptors again
// at the tail (sorted), and finally the listener detector.
func RegisterInterceptors(ctx context.Context, reg *registry.Registry, st *store.Store, bus *event.Bus) error {
	logger := ctxlog.FromContext(ctx)
	names := reg.NamesImplementing(interceptorType)

	// The fence goes in before anything else so it observes every
	// component realized while the chain is still incomplete.
	target := st.InterceptorCount() + 1 + len(names)
	st.AppendInterceptor(newCreationFence(reg, st, target))

	var priorityNames, orderedNames, unorderedNames []string
	for _, name := range names {
		switch {
		case reg.Implements(name, priorityOrderedType):
			priorityNames = append(priorityNames, name)
		case reg.Implements(name, orderedType):
			orderedNames = append(orderedNames, name)
		default:
			unorderedNames = append(unorderedNames, name)
		}
	}

	var mergeAware []record
	appendTier := func(tierNames []string, sorted bool) error {
		recs := make([]record, 0, len(tierNames))
		for _, name := range tierNames {
			interceptor, err := forceExtension[component.InstanceInterceptor](ctx, st, name)
			if err != nil {
				return err
			}
			rec := newRecord(name, interceptor)
			recs = append(recs, rec)
			if _, ok := interceptor.(component.MergeAware); ok {
				mergeAware = append(mergeAware, rec)
			}
		}
		if sorted {
			sortRecords(recs, reg)
		}
		for _, rec := range recs {
			st.AppendInterceptor(rec.instance.(component.InstanceInterceptor))
		}
		return nil
	}

	if err := appendTier(priorityNames, true); err != nil {
		return err
	}
	if err := appendTier(orderedNames, true); err != nil {
		return err
	}
	if err := appendTier(unorderedNames, false); err != nil {
		return err
	}

	// Merge-aware interceptors are appended a second time so their
	// definition hooks fire after every other interceptor. The earlier
	// tier entry stays in place: the chain is append-only, and the
	// duplication is intentional. Merge-aware hooks must be
	// reentrant-safe.
	sortRecords(mergeAware, reg)
	for _, rec := range mergeAware {
		st.AppendInterceptor(rec.instance.(component.InstanceInterceptor))
	}

	// Listener detection goes last, unconditionally, so it observes fully
	// wrapped instances.
	st.AppendInterceptor(newListenerDetector(bus))

	logger.Debug("Interceptor chain registered.",
		"chain_length", st.InterceptorCount(),
		"highest", len(priorityNames),
		"ordered", len(orderedNames),
		"unordered", len(unorderedNames),
		"merge_aware", len(mergeAware))
	return nil
}

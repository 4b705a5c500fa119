package component

import "context"

// Ordered is implemented by extensions that declare an explicit ordering
// key. Lower keys run earlier. Extensions without the interface sort after
// every keyed extension, keeping their relative discovery order.
type Ordered interface {
	OrderKey() int
}

// PriorityOrdered marks an Ordered extension as belonging to the highest
// invocation tier: it is discovered and run strictly before plain Ordered
// extensions. IsPriorityOrdered is a marker method and is never called.
type PriorityOrdered interface {
	Ordered
	IsPriorityOrdered()
}

// InstanceInterceptor wraps or observes every component instance around its
// creation. Both hooks return the instance to use from that point on;
// returning nil keeps the current instance.
//
// During bootstrap the same interceptor may appear twice in the store's
// chain (see the interceptor registration phase), so hooks must tolerate
// running more than once per creation.
type InstanceInterceptor interface {
	BeforeCreate(ctx context.Context, instance any, name string) (any, error)
	AfterCreate(ctx context.Context, instance any, name string) (any, error)
}

// MergeAware interceptors additionally post-process a component's
// definition right before its instance is populated. The store invokes
// PostProcessDefinition for every merge-aware entry in its chain on each
// creation; implementations must be idempotent.
type MergeAware interface {
	InstanceInterceptor
	PostProcessDefinition(ctx context.Context, def *Definition)
}

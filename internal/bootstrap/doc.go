// Package bootstrap orchestrates the container's lifecycle extensions.
//
// Two classes of extensions exist: registry mutators, which may add or
// rewrite component definitions before any ordinary component is
// instantiated, and instance interceptors, which observe every component
// instance around its creation. The orchestrator discovers both classes in
// the registry, honors their declared priority tiers (highest, ordered,
// unordered), runs registry mutators to a fixed point (a mutator may
// register further mutators mid-flight), and installs the interceptor
// chain into the store, guaranteeing that no extension runs twice and that
// no extension is instantiated before its tier is due.
//
// Everything here is a single synchronous bootstrap pass. Any hook failure
// aborts the whole startup; definitions already mutated stay mutated, as
// mutation is deliberately not transactional.
package bootstrap

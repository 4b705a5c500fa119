// Package store holds realized singleton component instances and the
// interceptor chain that observes every creation.
//
// GetOrCreate is the single entry point for realizing a component: it runs
// declared dependencies, the factory, merge-aware definition hooks, and
// the before/after interceptor chain, then caches the result. Creation may
// recurse, since a factory pulling its own dependencies goes back through
// GetOrCreate, so the store tracks in-progress names and fails fast on
// cycles rather than deadlocking on a half-built component.
package store

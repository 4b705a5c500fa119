// Package app encapsulates the container application's dependencies,
// configuration, and lifecycle. NewApp builds an isolated logger and
// registry, loads manifests, registers compiled-in modules, and validates
// the result; Run drives the bootstrap extension orchestration and then
// preinstantiates every remaining singleton.
package app

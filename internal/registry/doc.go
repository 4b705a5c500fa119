// Package registry provides the central definition store of the container.
//
// The Registry maps component names to their definitions and maps factory
// identifiers used in manifests (e.g., "NewPropertyResolver") to the
// compiled Go factories that implement them. It also answers capability
// queries: "which definition names resolve to a type implementing this
// interface". That is the question the bootstrap orchestrator asks when it
// discovers registry mutators, factory configurers, and interceptors.
//
// During application startup the registry is populated from the manifest
// model and then validated, catching manifest/Go mismatches before any
// component is instantiated.
package registry

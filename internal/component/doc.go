// Package component defines the core vocabulary of the container: component
// definitions, roles, factories, and the capability interfaces that
// bootstrap extensions implement.
//
// Capabilities are plain Go interfaces. The bootstrap orchestrator decides
// what an extension is allowed to do, and when it runs, by inspecting which
// of these interfaces a definition's resolved type (or a realized instance)
// implements. Nothing here is registered anywhere persistently; capability
// membership is recomputed whenever it is needed.
package component

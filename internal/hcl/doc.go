// Package hcl provides the concrete HCL implementation of the manifest
// loading interface defined in the `config` package. It is responsible for
// file parsing, block decoding against the schema package, and translation
// into the format-agnostic model.
package hcl

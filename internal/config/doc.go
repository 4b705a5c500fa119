// Package config defines the format-agnostic component manifest model,
// along with the Loader interface for reading manifests from various
// sources. The concrete HCL implementation lives in the hcl package.
package config

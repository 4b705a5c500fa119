// Package schema contains the HCL block structures for component manifest
// files, kept separate from the format-agnostic config model so that other
// manifest formats can be added without touching the model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// PropertiesBlock represents the content of the 'properties' block within
// a component. Attributes are arbitrary, so the body is kept raw and
// evaluated during translation.
type PropertiesBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Component represents a `component` block from a manifest file. It binds
// a component name to a registered Go factory and carries wiring metadata.
type Component struct {
	Name        string           `hcl:"name,label"`
	Factory     string           `hcl:"factory"`
	Role        string           `hcl:"role,optional"`
	Description string           `hcl:"description,optional"`
	DependsOn   []string         `hcl:"depends_on,optional"`
	Properties  *PropertiesBlock `hcl:"properties,block"`
}

// File represents the top-level structure of a single manifest file.
type File struct {
	Components []*Component `hcl:"component,block"`
	Body       hcl.Body     `hcl:",remain"`
}

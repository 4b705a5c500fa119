// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"fmt"

	"github.com/vk/fabricgo/internal/config"
	"github.com/vk/fabricgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// translateComponent converts an HCL component block into the agnostic model.
func (l *Loader) translateComponent(c *schema.Component) (*config.ComponentDefinition, error) {
	switch c.Role {
	case "", "ordinary", "infrastructure":
	default:
		return nil, fmt.Errorf("component '%s': invalid role %q, must be 'ordinary' or 'infrastructure'", c.Name, c.Role)
	}

	props, err := l.extractProperties(c)
	if err != nil {
		return nil, err
	}

	role := c.Role
	if role == "" {
		role = "ordinary"
	}

	return &config.ComponentDefinition{
		Name:        c.Name,
		Role:        role,
		Factory:     c.Factory,
		DependsOn:   c.DependsOn,
		Properties:  props,
		Description: c.Description,
	}, nil
}

// extractProperties evaluates every attribute of the properties block into
// a constant cty value. Properties cannot reference other components, so a
// nil evaluation context is deliberate.
func (l *Loader) extractProperties(c *schema.Component) (map[string]cty.Value, error) {
	if c.Properties == nil {
		return nil, nil
	}

	attrs, diags := c.Properties.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("component '%s': invalid properties block: %w", c.Name, diags)
	}

	props := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("component '%s': property '%s': %w", c.Name, name, diags)
		}
		props[name] = val
	}
	return props, nil
}

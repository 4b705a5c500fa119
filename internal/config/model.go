package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of all component
// manifests loaded for one application instance.
type Model struct {
	Components map[string]*ComponentDefinition

	// Order preserves the declaration order of Components across files,
	// which downstream discovery relies on.
	Order []string
}

// ComponentDefinition is the format-agnostic representation of a
// `component` block.
type ComponentDefinition struct {
	Name        string
	Role        string // "ordinary" (default) or "infrastructure"
	Factory     string // name of a registered Go factory
	DependsOn   []string
	Properties  map[string]cty.Value
	Description string
}

// Add inserts a definition, overwriting any previous one with the same
// name while keeping its original position in Order.
func (m *Model) Add(def *ComponentDefinition) {
	if m.Components == nil {
		m.Components = make(map[string]*ComponentDefinition)
	}
	if _, exists := m.Components[def.Name]; !exists {
		m.Order = append(m.Order, def.Name)
	}
	m.Components[def.Name] = def
}

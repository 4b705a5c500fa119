package component

import (
	"context"
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Role classifies a definition for bootstrap accounting. Infrastructure
// components are container plumbing and are exempt from the early-creation
// checks that apply to ordinary components.
type Role int

const (
	RoleOrdinary Role = iota
	RoleInfrastructure
)

// String returns the manifest spelling of the role.
func (r Role) String() string {
	if r == RoleInfrastructure {
		return "infrastructure"
	}
	return "ordinary"
}

// Resolver realizes components by name. The store implements it; factories
// receive it so they can pull their own dependencies, which may recursively
// trigger further creation.
type Resolver interface {
	GetOrCreate(ctx context.Context, name string) (any, error)
}

// Factory produces a component instance.
type Factory func(ctx context.Context, r Resolver) (any, error)

// Definition describes a single named component. Definitions are owned by
// the registry; registering a second definition under the same name
// overwrites the first.
type Definition struct {
	Name string

	// Type is the resolved Go type the factory produces, used for
	// capability matching before any instance exists. A definition with a
	// nil Type never matches a capability query.
	Type reflect.Type

	// FactoryName references a Go factory registered with the registry.
	// It is resolved into Factory when definitions are populated from a
	// configuration model; definitions created in code usually set
	// Factory directly and leave FactoryName empty.
	FactoryName string
	Factory     Factory

	Role       Role
	DependsOn  []string
	Properties map[string]cty.Value
}

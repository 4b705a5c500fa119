package registry

import (
	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/config"
)

// PopulateFromModel copies the loaded manifest definitions into the
// registry, resolving factory identifiers against the registered Go
// factories. Identifiers without a matching factory are left unresolved
// here; Validate reports them before anything is instantiated.
func (r *Registry) PopulateFromModel(model *config.Model) {
	for _, name := range model.Order {
		cd := model.Components[name]
		def := &component.Definition{
			Name:        cd.Name,
			FactoryName: cd.Factory,
			Role:        roleFromString(cd.Role),
			DependsOn:   cd.DependsOn,
			Properties:  cd.Properties,
		}
		if f, ok := r.factories[cd.Factory]; ok {
			def.Type = f.Type
			def.Factory = f.New
		}
		r.Register(def)
	}
}

func roleFromString(s string) component.Role {
	if s == "infrastructure" {
		return component.RoleInfrastructure
	}
	return component.RoleOrdinary
}

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/fabricgo/internal/ctxlog"
)

// Validate performs a strict parity check between manifests and Go code:
// every definition must resolve to a usable factory, and every declared
// dependency must name a known component.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.order {
		def := r.definitions[name]

		if def.Factory == nil {
			if def.FactoryName == "" {
				errs = append(errs, fmt.Sprintf("component '%s': no factory configured", name))
			} else {
				errs = append(errs, fmt.Sprintf("component '%s': manifest references factory '%s', but no such Go factory is registered", name, def.FactoryName))
			}
		}

		for _, dep := range def.DependsOn {
			if !r.Contains(dep) {
				errs = append(errs, fmt.Sprintf("component '%s': depends_on references unknown component '%s'", name, dep))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n - %s", strings.Join(errs, "\n - "))
	}

	logger.Debug("Registry validation passed.", "definitions", len(r.definitions))
	return nil
}

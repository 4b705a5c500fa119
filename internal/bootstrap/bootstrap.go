package bootstrap

import (
	"context"

	"github.com/vk/fabricgo/internal/event"
	"github.com/vk/fabricgo/internal/registry"
	"github.com/vk/fabricgo/internal/store"
)

// Run executes the full bootstrap extension orchestration against a
// registry and store: registry mutation, factory configuration, then
// interceptor registration. external holds extensions supplied by the
// embedding caller that are not registered in the registry; bus may be nil
// when the embedding container does not use events.
//
// There is no return value beyond the error: success is observed through
// the post-state of the registry and store.
func Run(ctx context.Context, reg *registry.Registry, st *store.Store, external []registry.FactoryConfigurer, bus *event.Bus) error {
	if err := RunBootstrapExtensions(ctx, reg, st, external); err != nil {
		return err
	}
	return RegisterInterceptors(ctx, reg, st, bus)
}

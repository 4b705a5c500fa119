package app

import (
	"context"
	"fmt"

	"github.com/vk/fabricgo/internal/bootstrap"
	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/event"
)

// Run boots the container: it drives the bootstrap extension
// orchestration, preinstantiates every remaining singleton, and publishes
// the started event. Any extension or factory failure aborts startup; no
// component becomes available.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	a.logger.Debug("Running bootstrap extensions...",
		"definitions", len(a.registry.Names()), "external_extensions", len(a.external))
	if err := bootstrap.Run(ctx, a.registry, a.store, a.external, a.bus); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	a.logger.Debug("Bootstrap extension orchestration finished.",
		"interceptors", a.store.InterceptorCount())

	for _, name := range a.registry.Names() {
		if _, err := a.store.GetOrCreate(ctx, name); err != nil {
			return fmt.Errorf("preinstantiation of component '%s' failed: %w", name, err)
		}
	}

	a.bus.Publish(ctx, event.ContainerStarted{Components: a.store.SingletonCount()})
	a.logger.Info("🚀 Container started.",
		"components", a.store.SingletonCount(),
		"interceptors", a.store.InterceptorCount(),
		"listeners", a.bus.ListenerCount())
	return nil
}

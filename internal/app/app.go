package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/fabricgo/internal/config"
	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/event"
	"github.com/vk/fabricgo/internal/registry"
	"github.com/vk/fabricgo/internal/store"
)

// App encapsulates the container application's dependencies,
// configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	store    *store.Store
	bus      *event.Bus
	external []registry.FactoryConfigurer
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and
// registry. Failures to load or validate configuration are fatal startup
// errors and panic; the CLI boundary recovers them.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ComponentsPath)
	if err != nil {
		panic(fmt.Errorf("failed to load component manifests: %w", err))
	}
	logger.Debug("Component manifests loaded into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(appConfig)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	reg.PopulateFromModel(model)
	logger.Debug("Registry definitions populated from manifest model.")

	if err := reg.Validate(ctx); err != nil {
		// A manifest/Go mismatch is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		store:    store.New(reg),
		bus:      event.NewBus(),
	}
}

// AddExtension supplies an external bootstrap extension that is not
// registered in the registry. Must be called before Run.
func (a *App) AddExtension(ext registry.FactoryConfigurer) {
	a.external = append(a.external, ext)
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Store returns the application's component store. Primarily for testing.
func (a *App) Store() *store.Store {
	return a.store
}

// Bus returns the application's event bus. Primarily for testing.
func (a *App) Bus() *event.Bus {
	return a.bus
}

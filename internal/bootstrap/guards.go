package bootstrap

import (
	"context"
	"fmt"

	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/event"
	"github.com/vk/fabricgo/internal/registry"
	"github.com/vk/fabricgo/internal/store"
)

// creationFence flags components that are fully built while the
// interceptor chain is still below its target length. Such components were
// created too early, usually as a dependency of an interceptor, and will
// not be processed by the complete chain. Interceptors themselves and
// infrastructure components are exempt.
type creationFence struct {
	reg     *registry.Registry
	st      *store.Store
	target  int
	flagged int
}

func newCreationFence(reg *registry.Registry, st *store.Store, target int) *creationFence {
	return &creationFence{reg: reg, st: st, target: target}
}

func (f *creationFence) BeforeCreate(_ context.Context, instance any, _ string) (any, error) {
	return instance, nil
}

func (f *creationFence) AfterCreate(ctx context.Context, instance any, name string) (any, error) {
	if f.st.InterceptorCount() >= f.target {
		return instance, nil
	}
	if _, isInterceptor := instance.(component.InstanceInterceptor); isInterceptor {
		return instance, nil
	}
	if def := f.reg.Definition(name); def != nil && def.Role == component.RoleInfrastructure {
		return instance, nil
	}
	f.flagged++
	ctxlog.FromContext(ctx).Info(
		"Component created before the interceptor chain was complete; it is not eligible for processing by all interceptors.",
		"name", name, "type", fmt.Sprintf("%T", instance))
	return instance, nil
}

// FlagCount returns how many early creations the fence has observed.
func (f *creationFence) FlagCount() int { return f.flagged }

// listenerDetector subscribes realized components that implement
// event.Listener to the container's event bus. It sits at the very end of
// the chain so that it sees instances after every wrapping interceptor has
// had its turn.
type listenerDetector struct {
	bus *event.Bus
}

func newListenerDetector(bus *event.Bus) *listenerDetector {
	return &listenerDetector{bus: bus}
}

func (d *listenerDetector) BeforeCreate(_ context.Context, instance any, _ string) (any, error) {
	return instance, nil
}

func (d *listenerDetector) AfterCreate(ctx context.Context, instance any, name string) (any, error) {
	if d.bus == nil {
		return instance, nil
	}
	if l, ok := instance.(event.Listener); ok {
		d.bus.Subscribe(l)
		ctxlog.FromContext(ctx).Debug("Subscribed component to the event bus.", "name", name)
	}
	return instance, nil
}

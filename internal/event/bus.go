// Package event provides a minimal synchronous event bus. The bootstrap's
// listener-detection interceptor subscribes realized components that
// implement Listener, so container events reach them without any explicit
// wiring.
package event

import "context"

// Listener is the capability of a component that wants container events.
type Listener interface {
	OnEvent(ctx context.Context, ev any)
}

// ContainerStarted is published once bootstrap and preinstantiation have
// completed.
type ContainerStarted struct {
	Components int
}

// Bus multicasts events to subscribers in subscription order. Single
// goroutine only, like the rest of the bootstrap.
type Bus struct {
	listeners []Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds a listener. Subscribing the same listener twice is a
// no-op, which lets the detection interceptor stay reentrant-safe.
func (b *Bus) Subscribe(l Listener) {
	for _, existing := range b.listeners {
		if existing == l {
			return
		}
	}
	b.listeners = append(b.listeners, l)
}

// Publish delivers ev to every subscriber, synchronously and in order.
func (b *Bus) Publish(ctx context.Context, ev any) {
	for _, l := range b.listeners {
		l.OnEvent(ctx, ev)
	}
}

// ListenerCount returns the number of subscribers.
func (b *Bus) ListenerCount() int {
	return len(b.listeners)
}

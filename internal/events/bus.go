// Package events delivers committed domain events to registered listeners.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
)

// Listener reacts to domain events. Returned errors are logged and dropped.
type Listener interface {
	Name() string
	Handle(ctx context.Context, event domain.Event) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc struct {
	ListenerName string
	Fn           func(ctx context.Context, event domain.Event) error
}

func (f ListenerFunc) Name() string { return f.ListenerName }

func (f ListenerFunc) Handle(ctx context.Context, event domain.Event) error {
	return f.Fn(ctx, event)
}

// Bus delivers events synchronously to listeners in registration order.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewBus creates a bus with the given listeners registered in order.
func NewBus(listeners ...Listener) *Bus {
	b := &Bus{}
	for _, l := range listeners {
		b.Subscribe(l)
	}
	return b
}

var _ portssvc.EventPublisher = (*Bus)(nil)

// Subscribe appends a listener.
func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// Listeners returns the registered listener names in order.
func (b *Bus) Listeners() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, len(b.listeners))
	for i, l := range b.listeners {
		names[i] = l.Name()
	}
	return names
}

// Publish delivers each event to every listener before moving to the next event.
// A failing or panicking listener never affects the caller or other listeners.
func (b *Bus) Publish(ctx context.Context, events ...domain.Event) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	logger := middleware.GetLoggerFromCtx(ctx)
	for _, event := range events {
		for _, l := range listeners {
			if err := deliver(ctx, l, event); err != nil {
				logger.Warn("Event listener failed",
					slog.String("listener", l.Name()),
					slog.String("event_type", string(event.EventType())),
					slog.String("aggregate_id", event.AggregateID()),
					slog.String("error", err.Error()))
			}
		}
	}
}

func deliver(ctx context.Context, l Listener, event domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()
	return l.Handle(ctx, event)
}

package notification

import (
	"context"

	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// CompositeDispatcher fans an event out to every configured channel.
// Per-channel failures are logged; the composite itself never fails.
type CompositeDispatcher struct {
	dispatchers []Dispatcher
	logger      logger.Interface
}

// NewCompositeDispatcher wraps the given channels.
func NewCompositeDispatcher(log logger.Interface, dispatchers ...Dispatcher) *CompositeDispatcher {
	return &CompositeDispatcher{
		dispatchers: dispatchers,
		logger:      log.Named("notification"),
	}
}

// Dispatch delivers the event on every channel.
func (c *CompositeDispatcher) Dispatch(ctx context.Context, event Event) error {
	for _, d := range c.dispatchers {
		if err := d.Dispatch(ctx, event); err != nil {
			c.logger.Warnw("notification delivery failed",
				"event", string(event.Type),
				"principal_id", event.To.ID(),
				"error", err,
			)
		}
	}
	return nil
}

// NoopDispatcher discards every event. Used when no channel is configured
// and in tests.
type NoopDispatcher struct{}

// NewNoopDispatcher creates a dispatcher that does nothing.
func NewNoopDispatcher() *NoopDispatcher {
	return &NoopDispatcher{}
}

// Dispatch discards the event.
func (NoopDispatcher) Dispatch(context.Context, Event) error { return nil }

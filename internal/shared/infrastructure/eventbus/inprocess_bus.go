package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// HandlerFunc consumes one event payload for a routing key.
type HandlerFunc func(ctx context.Context, routingKey string, payload []byte) error

// InProcessEventBus is an in-memory bus for local mode (no RabbitMQ). Events
// are delivered synchronously to subscribed handlers; a handler error is
// logged, never returned, so local publishing cannot fail the caller.
type InProcessEventBus struct {
	mu       sync.Mutex
	handlers map[string][]HandlerFunc
	logger   *slog.Logger
}

// NewInProcessEventBus creates a new in-process event bus.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{
		handlers: make(map[string][]HandlerFunc),
		logger:   logger,
	}
}

// Subscribe registers a handler for a routing key.
func (b *InProcessEventBus) Subscribe(routingKey string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], handler)
}

// Publish dispatches the payload to every handler subscribed to the key.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.Lock()
	handlers := append([]HandlerFunc(nil), b.handlers[routingKey]...)
	b.mu.Unlock()

	start := time.Now()
	for _, handler := range handlers {
		if err := handler(ctx, routingKey, payload); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", routingKey,
				"error", err,
			)
		}
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"handlers", len(handlers),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessEventBus) Close() error {
	return nil
}

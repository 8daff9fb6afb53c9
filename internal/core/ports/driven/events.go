package driven

import "context"

// EventPublisher emits source lifecycle events (NATS, or a no-op when unconfigured)
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

package events

import (
	"context"

	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

var _ driven.EventPublisher = NoopPublisher{}

// NoopPublisher drops every event. Used when NATS_URL is unset.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, topic string, event any) error { return nil }

func (NoopPublisher) Close() error { return nil }

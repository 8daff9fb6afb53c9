package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

var _ driven.EventPublisher = (*MockEventPublisher)(nil)

// PublishedEvent is one call to Publish
type PublishedEvent struct {
	Topic string
	Event any
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent

	// PublishErr, when set, is returned by Publish
	PublishErr error
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, event any) error {
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{Topic: topic, Event: event})
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// Events returns a copy of everything published so far
func (m *MockEventPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EventPublisher = (*NATSPublisher)(nil)

// NATSPublisher publishes JSON-encoded events to NATS subjects
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to url. The connection retries in the
// background if the server goes away.
func NewNATSPublisher(url string, opts ...nats.Option) (*NATSPublisher, error) {
	nc, err := connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc}, nil
}

// Publish sends event to topic
func (p *NATSPublisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	if err := p.conn.Publish(topic, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}

// Flush waits until the server has seen every published message
func (p *NATSPublisher) Flush(ctx context.Context) error {
	return p.conn.FlushWithContext(ctx)
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// Message is one event received from a subscription
type Message struct {
	Subject string
	Data    []byte
}

// NATSSubscriber receives events from NATS subjects
type NATSSubscriber struct {
	conn *nats.Conn
}

// NewNATSSubscriber connects to url
func NewNATSSubscriber(url string, opts ...nats.Option) (*NATSSubscriber, error) {
	nc, err := connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &NATSSubscriber{conn: nc}, nil
}

// Subscribe delivers messages on subject (wildcards allowed, e.g. "sources.>")
// until ctx is done, then closes the channel. Messages that arrive while the
// channel is full are dropped.
func (s *NATSSubscriber) Subscribe(ctx context.Context, subject string) (<-chan Message, error) {
	raw := make(chan *nats.Msg, 64)
	sub, err := s.conn.ChanSubscribe(subject, raw)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	// the subscription must reach the server before we report success
	if err := s.conn.FlushWithContext(ctx); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("flushing subscription: %w", err)
	}

	out := make(chan Message, 64)
	go func() {
		defer close(out)
		defer sub.Unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-raw:
				select {
				case out <- Message{Subject: msg.Subject, Data: msg.Data}:
				default:
				}
			}
		}
	}()
	return out, nil
}

// Close closes the connection
func (s *NATSSubscriber) Close() error {
	s.conn.Close()
	return nil
}

func connect(url string, opts ...nats.Option) (*nats.Conn, error) {
	defaults := []nats.Option{
		nats.Name("descriptor-studio"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return nc, nil
}

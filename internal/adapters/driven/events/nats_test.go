package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// startTestNATS starts an embedded NATS server and returns its client URL.
func startTestNATS(t *testing.T) string {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	require.NoError(t, err)
	srv.Start()
	t.Cleanup(srv.Shutdown)
	require.True(t, srv.ReadyForConnections(5*time.Second), "embedded NATS not ready")
	return srv.ClientURL()
}

func TestNATS_PublishSubscribe(t *testing.T) {
	url := startTestNATS(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := NewNATSSubscriber(url)
	require.NoError(t, err)
	defer sub.Close()

	msgs, err := sub.Subscribe(ctx, "sources.>")
	require.NoError(t, err)

	pub, err := NewNATSPublisher(url)
	require.NoError(t, err)
	defer pub.Close()

	require.NoError(t, pub.Publish(ctx, domain.TopicSourceDeleted, domain.SourceDeleted{SourceID: "src-1"}))
	require.NoError(t, pub.Flush(ctx))

	select {
	case msg := <-msgs:
		assert.Equal(t, domain.TopicSourceDeleted, msg.Subject)
		var ev domain.SourceDeleted
		require.NoError(t, json.Unmarshal(msg.Data, &ev))
		assert.Equal(t, "src-1", ev.SourceID)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestNATS_SubscriptionEndsWithContext(t *testing.T) {
	url := startTestNATS(t)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := NewNATSSubscriber(url)
	require.NoError(t, err)
	defer sub.Close()

	msgs, err := sub.Subscribe(ctx, "sources.>")
	require.NoError(t, err)
	cancel()

	select {
	case _, open := <-msgs:
		assert.False(t, open)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestNATS_PublishUnmarshalable(t *testing.T) {
	pub, err := NewNATSPublisher(startTestNATS(t))
	require.NoError(t, err)
	defer pub.Close()

	err = pub.Publish(context.Background(), "sources.bad", map[string]any{"f": func() {}})
	assert.Error(t, err)
}

func TestNATS_ConnectFailure(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1")
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.Publish(context.Background(), "x", struct{}{}))
	assert.NoError(t, p.Close())
}

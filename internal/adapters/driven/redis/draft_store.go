package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DraftStore = (*DraftStore)(nil)

const draftPrefix = "descriptor-studio:draft:"

// DraftStore implements driven.DraftStore using Redis.
// Drafts are stored as JSON and expire through Redis TTL.
type DraftStore struct {
	client redis.UniversalClient
}

// NewDraftStore creates a new Redis-backed DraftStore
func NewDraftStore(client redis.UniversalClient) *DraftStore {
	return &DraftStore{client: client}
}

// Save stores the session until its ExpiresAt. An already expired
// session is not written; a zero ExpiresAt keeps it forever.
func (s *DraftStore) Save(ctx context.Context, session *domain.EditorSession) error {
	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.client.Set(ctx, draftPrefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Get retrieves a draft by session ID
func (s *DraftStore) Get(ctx context.Context, id string) (*domain.EditorSession, error) {
	data, err := s.client.Get(ctx, draftPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var session domain.EditorSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &session, nil
}

// Delete removes a draft. Missing drafts are not an error.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, draftPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

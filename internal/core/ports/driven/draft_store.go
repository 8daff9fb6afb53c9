package driven

import (
	"context"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// DraftStore persists editor sessions between requests (Redis, PostgreSQL fallback)
type DraftStore interface {
	// Save stores a session with TTL based on ExpiresAt
	Save(ctx context.Context, session *domain.EditorSession) error

	// Get retrieves a session by ID. Expired sessions are not found.
	Get(ctx context.Context, id string) (*domain.EditorSession, error)

	// Delete deletes a session
	Delete(ctx context.Context, id string) error
}

// DraftPurger removes expired sessions from stores that do not expire
// keys on their own. Redis drops drafts by TTL and does not need one.
type DraftPurger interface {
	// PurgeExpired deletes expired sessions and returns how many were removed
	PurgeExpired(ctx context.Context) (int64, error)
}

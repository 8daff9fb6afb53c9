package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DraftStore = (*DraftStore)(nil)
var _ driven.DraftPurger = (*DraftStore)(nil)

// DraftStore implements driven.DraftStore using PostgreSQL.
// Used when Redis is not configured; expired rows are filtered on read
// and removed by PurgeExpired.
type DraftStore struct {
	db *DB
}

// NewDraftStore creates a new DraftStore
func NewDraftStore(db *DB) *DraftStore {
	return &DraftStore{db: db}
}

// Save creates or updates an editor session
func (s *DraftStore) Save(ctx context.Context, session *domain.EditorSession) error {
	stateJSON, err := json.Marshal(session.State)
	if err != nil {
		return fmt.Errorf("marshal editor state: %w", err)
	}

	query := `
		INSERT INTO editor_sessions (id, state, pending, created_by, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state,
			pending = EXCLUDED.pending,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at
	`

	_, err = s.db.ExecContext(ctx, query,
		session.ID,
		stateJSON,
		session.Pending,
		NullString(session.CreatedBy),
		session.CreatedAt,
		session.UpdatedAt,
		session.ExpiresAt,
	)
	return err
}

// Get retrieves an unexpired editor session by ID
func (s *DraftStore) Get(ctx context.Context, id string) (*domain.EditorSession, error) {
	query := `
		SELECT id, state, pending, created_by, created_at, updated_at, expires_at
		FROM editor_sessions
		WHERE id = $1 AND expires_at > NOW()
	`

	var session domain.EditorSession
	var stateJSON []byte
	var createdBy sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&stateJSON,
		&session.Pending,
		&createdBy,
		&session.CreatedAt,
		&session.UpdatedAt,
		&session.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(stateJSON, &session.State); err != nil {
		return nil, fmt.Errorf("unmarshal editor state for session %s: %w", session.ID, err)
	}
	session.CreatedBy = createdBy.String
	return &session, nil
}

// Delete deletes an editor session. Missing sessions are not an error.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM editor_sessions WHERE id = $1`, id)
	return err
}

// PurgeExpired removes sessions past their expiry and returns how many went
func (s *DraftStore) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM editor_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

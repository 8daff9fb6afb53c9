package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

func testSession() *domain.EditorSession {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.EditorSession{
		ID: "ed_abc123",
		State: domain.EditorState{
			Model: domain.NewSourceDescriptor(),
			Keys:  domain.ItemKeys{APIFilters: []string{}, BackendFilters: []string{}},
			Mode:  domain.ModeJSON,
			Text:  "{oops",
			Error: domain.EditorErrorInvalidJSON,
		},
		CreatedBy: "user-1",
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

var sessionRowColumns = []string{"id", "state", "pending", "created_by", "created_at", "updated_at", "expires_at"}

func TestDraftStore_Save(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewDraftStore(db)
	s := testSession()

	stateJSON, err := json.Marshal(s.State)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO editor_sessions").
		WithArgs(s.ID, stateJSON, false, "user-1", s.CreatedAt, s.UpdatedAt, s.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save(context.Background(), s))
}

func TestDraftStore_Get(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewDraftStore(db)
	s := testSession()

	stateJSON, err := json.Marshal(s.State)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM editor_sessions\\s+WHERE id = \\$1 AND expires_at > NOW\\(\\)").
		WithArgs(s.ID).
		WillReturnRows(sqlmock.NewRows(sessionRowColumns).
			AddRow(s.ID, stateJSON, true, "user-1", s.CreatedAt, s.UpdatedAt, s.ExpiresAt))

	got, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.True(t, got.Pending)
	assert.Equal(t, domain.ModeJSON, got.State.Mode)
	assert.Equal(t, "{oops", got.State.Text)
	assert.Equal(t, domain.EditorErrorInvalidJSON, got.State.Error)
	assert.Equal(t, "user-1", got.CreatedBy)
}

func TestDraftStore_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewDraftStore(db)

	mock.ExpectQuery("SELECT .* FROM editor_sessions").
		WithArgs("ed_gone").
		WillReturnRows(sqlmock.NewRows(sessionRowColumns))

	_, err := store.Get(context.Background(), "ed_gone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewDraftStore(db)

	mock.ExpectExec("DELETE FROM editor_sessions WHERE id = \\$1").
		WithArgs("ed_abc123").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Delete(context.Background(), "ed_abc123"))
}

func TestDraftStore_PurgeExpired(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewDraftStore(db)

	mock.ExpectExec("DELETE FROM editor_sessions WHERE expires_at <= NOW\\(\\)").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

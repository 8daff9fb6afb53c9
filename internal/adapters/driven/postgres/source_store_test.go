package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

func testSource() *domain.Source {
	d := domain.NewSourceDescriptor()
	d.Name = "Open Library"
	d.Endpoint = "https://openlibrary.org/search.json"
	d.APIKey = "sk-123"
	d.Mapping["docs.title"] = "title"
	d.APIFilters = append(d.APIFilters, domain.NewQueryParamDescriptor())
	d.APIFilters[0].Key = "q"

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Source{
		ID:               "0b6d1c58-7f6e-4c8c-9a0e-2a1f4f7b9d10",
		SourceDescriptor: d,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        "user-1",
	}
}

var sourceRowColumns = []string{
	"id", "name", "endpoint", "method", "is_active", "descriptor",
	"api_key", "api_key_enc", "created_by", "created_at", "updated_at",
}

func descriptorJSON(t *testing.T, s *domain.Source) []byte {
	t.Helper()
	d := s.SourceDescriptor.Clone()
	d.APIKey = ""
	b, err := json.Marshal(d)
	require.NoError(t, err)
	return b
}

func TestSourceStore_SavePlainKey(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSourceStore(db, nil)
	src := testSource()

	mock.ExpectExec("INSERT INTO sources").
		WithArgs(src.ID, src.Name, src.Endpoint, "GET", true, descriptorJSON(t, src),
			"sk-123", nil, "user-1", src.CreatedAt, src.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save(context.Background(), src))
	assert.Equal(t, "sk-123", src.APIKey, "caller's source must not be modified")
}

func TestSourceStore_SaveEncryptsKey(t *testing.T) {
	db, mock := newMockDB(t)
	enc, err := NewSecretEncryptor(testKey)
	require.NoError(t, err)
	store := NewSourceStore(db, enc)
	src := testSource()

	mock.ExpectExec("INSERT INTO sources").
		WithArgs(src.ID, src.Name, src.Endpoint, "GET", true, descriptorJSON(t, src),
			nil, sqlmock.AnyArg(), "user-1", src.CreatedAt, src.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save(context.Background(), src))
}

func TestSourceStore_GetDecryptsKey(t *testing.T) {
	db, mock := newMockDB(t)
	enc, err := NewSecretEncryptor(testKey)
	require.NoError(t, err)
	store := NewSourceStore(db, enc)
	src := testSource()

	blob, err := enc.EncryptString("sk-123")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM sources WHERE id = \\$1").
		WithArgs(src.ID).
		WillReturnRows(sqlmock.NewRows(sourceRowColumns).AddRow(
			src.ID, src.Name, src.Endpoint, "GET", true, descriptorJSON(t, src),
			nil, blob, "user-1", src.CreatedAt, src.UpdatedAt,
		))

	got, err := store.Get(context.Background(), src.ID)
	require.NoError(t, err)
	assert.Equal(t, "sk-123", got.APIKey)
	assert.Equal(t, "title", got.Mapping["docs.title"])
	require.Len(t, got.APIFilters, 1)
	assert.Equal(t, "q", got.APIFilters[0].Key)
	assert.Equal(t, "user-1", got.CreatedBy)
}

func TestSourceStore_GetEncryptedWithoutEncryptor(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSourceStore(db, nil)
	src := testSource()

	mock.ExpectQuery("SELECT .* FROM sources").
		WithArgs(src.ID).
		WillReturnRows(sqlmock.NewRows(sourceRowColumns).AddRow(
			src.ID, src.Name, src.Endpoint, "GET", true, descriptorJSON(t, src),
			nil, []byte{secretVersion, 1, 2, 3}, nil, src.CreatedAt, src.UpdatedAt,
		))

	_, err := store.Get(context.Background(), src.ID)
	assert.ErrorIs(t, err, ErrNoEncryptor)
}

func TestSourceStore_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSourceStore(db, nil)

	mock.ExpectQuery("SELECT .* FROM sources").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(sourceRowColumns))

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceStore_List(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSourceStore(db, nil)
	a := testSource()
	b := testSource()
	b.ID = "7a1e9c2b-2d4f-4e55-8f0a-9b6c3d2e1f00"
	b.Name = "Second"

	mock.ExpectQuery("SELECT .* FROM sources ORDER BY created_at ASC").
		WillReturnRows(sqlmock.NewRows(sourceRowColumns).
			AddRow(a.ID, a.Name, a.Endpoint, "GET", true, descriptorJSON(t, a), "sk-123", nil, "user-1", a.CreatedAt, a.UpdatedAt).
			AddRow(b.ID, b.Name, b.Endpoint, "POST", false, descriptorJSON(t, b), nil, nil, nil, b.CreatedAt, b.UpdatedAt))

	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sk-123", got[0].APIKey)
	assert.Equal(t, "Second", got[1].Name)
	assert.Equal(t, domain.MethodPost, got[1].Method)
	assert.False(t, got[1].IsActive)
	assert.Empty(t, got[1].APIKey)
}

func TestSourceStore_ListQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSourceStore(db, nil)

	mock.ExpectQuery("SELECT .* FROM sources").WillReturnError(errors.New("connection reset"))

	_, err := store.List(context.Background())
	assert.Error(t, err)
}

func TestSourceStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSourceStore(db, nil)

	mock.ExpectExec("DELETE FROM sources WHERE id = \\$1").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM sources WHERE id = \\$1").
		WithArgs("id-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), "id-1"))
	assert.ErrorIs(t, store.Delete(context.Background(), "id-2"), domain.ErrNotFound)
}

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
var _ driven.SourceStore = (*SourceStore)(nil)

// ErrNoEncryptor is returned when a row holds an encrypted api key
// but the store was built without a key to open it.
var ErrNoEncryptor = errors.New("source has an encrypted api key but no encryptor is configured")

// SourceStore implements driven.SourceStore using PostgreSQL.
// The descriptor is kept as JSONB; the api key is stored apart from it,
// encrypted when an encryptor is configured.
type SourceStore struct {
	db        *DB
	encryptor *SecretEncryptor
}

// NewSourceStore creates a new SourceStore. encryptor may be nil, in which
// case api keys are stored in clear text.
func NewSourceStore(db *DB, encryptor *SecretEncryptor) *SourceStore {
	return &SourceStore{db: db, encryptor: encryptor}
}

const sourceColumns = `id, name, endpoint, method, is_active, descriptor, api_key, api_key_enc, created_by, created_at, updated_at`

// Save creates or updates a source
func (s *SourceStore) Save(ctx context.Context, source *domain.Source) error {
	descriptor := source.SourceDescriptor.Clone()
	apiKey := descriptor.APIKey
	descriptor.APIKey = ""

	descriptorJSON, err := json.Marshal(descriptor)
	if err != nil {
		return fmt.Errorf("marshal descriptor: %w", err)
	}

	var plainKey sql.NullString
	var encKey any
	if apiKey != "" {
		if s.encryptor != nil {
			blob, err := s.encryptor.EncryptString(apiKey)
			if err != nil {
				return fmt.Errorf("encrypt api key: %w", err)
			}
			encKey = blob
		} else {
			plainKey = NullString(apiKey)
		}
	}

	query := `
		INSERT INTO sources (` + sourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			endpoint = EXCLUDED.endpoint,
			method = EXCLUDED.method,
			is_active = EXCLUDED.is_active,
			descriptor = EXCLUDED.descriptor,
			api_key = EXCLUDED.api_key,
			api_key_enc = EXCLUDED.api_key_enc,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		source.ID,
		source.Name,
		source.Endpoint,
		string(source.Method),
		source.IsActive,
		descriptorJSON,
		plainKey,
		encKey,
		NullString(source.CreatedBy),
		source.CreatedAt,
		source.UpdatedAt,
	)
	return err
}

// Get retrieves a source by ID
func (s *SourceStore) Get(ctx context.Context, id string) (*domain.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources WHERE id = $1`

	source, err := s.scanSource(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return source, nil
}

// List retrieves all sources ordered by creation time
func (s *SourceStore) List(ctx context.Context) ([]*domain.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*domain.Source
	for rows.Next() {
		source, err := s.scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// Delete deletes a source
func (s *SourceStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SourceStore) scanSource(row rowScanner) (*domain.Source, error) {
	var source domain.Source
	var name, endpoint, method string
	var isActive bool
	var descriptorJSON, encKey []byte
	var plainKey, createdBy sql.NullString

	err := row.Scan(
		&source.ID,
		&name,
		&endpoint,
		&method,
		&isActive,
		&descriptorJSON,
		&plainKey,
		&encKey,
		&createdBy,
		&source.CreatedAt,
		&source.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(descriptorJSON, &source.SourceDescriptor); err != nil {
		return nil, fmt.Errorf("unmarshal descriptor for source %s: %w", source.ID, err)
	}
	source.Name = name
	source.Endpoint = endpoint
	source.Method = domain.HTTPMethod(method)
	source.IsActive = isActive
	source.CreatedBy = createdBy.String

	switch {
	case len(encKey) > 0:
		if s.encryptor == nil {
			return nil, ErrNoEncryptor
		}
		key, err := s.encryptor.DecryptString(encKey)
		if err != nil {
			return nil, fmt.Errorf("decrypt api key for source %s: %w", source.ID, err)
		}
		source.APIKey = key
	case plainKey.Valid:
		source.APIKey = plainKey.String
	}

	return &source, nil
}

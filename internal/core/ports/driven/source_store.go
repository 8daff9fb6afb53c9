package driven

import (
	"context"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// SourceStore handles source persistence (PostgreSQL)
type SourceStore interface {
	// Save creates or updates a source
	Save(ctx context.Context, source *domain.Source) error

	// Get retrieves a source by ID
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List retrieves all sources ordered by creation time
	List(ctx context.Context) ([]*domain.Source, error)

	// Delete deletes a source
	Delete(ctx context.Context, id string) error
}

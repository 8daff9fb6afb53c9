package driving

import (
	"context"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// SourceService manages stored source descriptors
type SourceService interface {
	// Create validates and stores a descriptor (admin only)
	Create(ctx context.Context, creatorID string, descriptor domain.SourceDescriptor) (*domain.Source, error)

	// Get retrieves a source by ID
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List retrieves all sources, oldest first
	List(ctx context.Context) ([]*domain.Source, error)

	// Delete removes a source (admin only)
	Delete(ctx context.Context, id string) error

	// Filters returns the filter configuration of one source with
	// default operators filled in
	Filters(ctx context.Context, id string) (*domain.SourceFilters, error)

	// FilterTemplates returns the field types and operators a backend filter may use
	FilterTemplates() domain.FilterTemplates

	// OperatorCatalog returns the labelled operator set per field type
	OperatorCatalog() domain.OperatorCatalog
}

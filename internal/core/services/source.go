package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driving"
)

// Ensure sourceService implements SourceService
var _ driving.SourceService = (*sourceService)(nil)

// sourceService implements the SourceService interface
type sourceService struct {
	sourceStore driven.SourceStore
	publisher   driven.EventPublisher
	logger      *slog.Logger
}

// NewSourceService creates a new SourceService.
// publisher and logger may be nil.
func NewSourceService(
	sourceStore driven.SourceStore,
	publisher driven.EventPublisher,
	logger *slog.Logger,
) driving.SourceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &sourceService{
		sourceStore: sourceStore,
		publisher:   publisher,
		logger:      logger,
	}
}

// Create validates required fields and stores the descriptor (admin only)
func (s *sourceService) Create(ctx context.Context, creatorID string, descriptor domain.SourceDescriptor) (*domain.Source, error) {
	d := descriptor.Clone()
	d.Name = strings.TrimSpace(d.Name)
	d.Endpoint = strings.TrimSpace(d.Endpoint)

	if d.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if d.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", domain.ErrInvalidInput)
	}
	if !d.Method.Valid() {
		return nil, fmt.Errorf("%w: method %q is not one of GET, POST, PUT, DELETE", domain.ErrInvalidInput, d.Method)
	}
	if problems := d.LengthProblems(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	fillStorageDefaults(&d)

	now := time.Now()
	source := &domain.Source{
		ID:               uuid.NewString(),
		SourceDescriptor: d,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        creatorID,
	}

	if err := s.sourceStore.Save(ctx, source); err != nil {
		return nil, err
	}

	s.logger.Info("source created", "source_id", source.ID, "name", source.Name, "created_by", creatorID)
	s.publish(ctx, domain.TopicSourceCreated, domain.SourceCreated{Source: source.Redacted()})

	return source, nil
}

// Get retrieves a source by ID
func (s *sourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	return s.sourceStore.Get(ctx, id)
}

// List retrieves all sources
func (s *sourceService) List(ctx context.Context) ([]*domain.Source, error) {
	return s.sourceStore.List(ctx)
}

// Delete removes a source (admin only)
func (s *sourceService) Delete(ctx context.Context, id string) error {
	if err := s.sourceStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("source deleted", "source_id", id)
	s.publish(ctx, domain.TopicSourceDeleted, domain.SourceDeleted{SourceID: id})
	return nil
}

// Filters returns the api and backend filters of one source.
// Backend filters without operators get their type's default set.
func (s *sourceService) Filters(ctx context.Context, id string) (*domain.SourceFilters, error) {
	source, err := s.sourceStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	d := source.SourceDescriptor.Clone()
	apiFilters := d.APIFilters
	if apiFilters == nil {
		apiFilters = []domain.QueryParamDescriptor{}
	}
	backendFilters := make([]domain.FilterDescriptor, len(d.BackendFilters))
	for i, f := range d.BackendFilters {
		f.Operators = f.EffectiveOperators()
		backendFilters[i] = f
	}

	return &domain.SourceFilters{
		SourceID:       source.ID,
		SourceName:     source.Name,
		APIFilters:     apiFilters,
		BackendFilters: backendFilters,
	}, nil
}

// FilterTemplates returns the field types and operators a backend filter may use
func (s *sourceService) FilterTemplates() domain.FilterTemplates {
	return domain.NewFilterTemplates()
}

// OperatorCatalog returns the labelled operator set per field type
func (s *sourceService) OperatorCatalog() domain.OperatorCatalog {
	return domain.NewOperatorCatalog()
}

func (s *sourceService) publish(ctx context.Context, topic string, event any) {
	if s.publisher == nil {
		return
	}
	// the source is already stored; a lost event is logged, not returned
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish source event", "topic", topic, "error", err)
	}
}

// fillStorageDefaults replaces absent collections and numbers so stored
// sources always carry complete values.
func fillStorageDefaults(d *domain.SourceDescriptor) {
	defaults := domain.NewSourceDescriptor()
	if d.Mapping == nil {
		d.Mapping = defaults.Mapping
	}
	if d.Headers == nil {
		d.Headers = defaults.Headers
	}
	if d.APIFilters == nil {
		d.APIFilters = defaults.APIFilters
	}
	if d.BackendFilters == nil {
		d.BackendFilters = defaults.BackendFilters
	}
	if d.RequestTimeout == nil {
		d.RequestTimeout = defaults.RequestTimeout
	}
	if d.MaxPagesForBackendFilters == nil {
		d.MaxPagesForBackendFilters = defaults.MaxPagesForBackendFilters
	}
	if d.PaginationStyle == "" {
		d.PaginationStyle = defaults.PaginationStyle
	}
}

package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

var _ driven.SourceStore = (*MockSourceStore)(nil)

// MockSourceStore is a mock implementation of SourceStore for testing
type MockSourceStore struct {
	mu      sync.RWMutex
	sources map[string]*domain.Source

	// SaveErr, when set, is returned by Save
	SaveErr error

	// SaveFn, when set, runs first and its error is returned by Save
	SaveFn func(ctx context.Context, source *domain.Source) error
}

// NewMockSourceStore creates a new MockSourceStore
func NewMockSourceStore() *MockSourceStore {
	return &MockSourceStore{
		sources: make(map[string]*domain.Source),
	}
}

func (m *MockSourceStore) Save(ctx context.Context, source *domain.Source) error {
	if m.SaveFn != nil {
		if err := m.SaveFn(ctx, source); err != nil {
			return err
		}
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *source
	cp.SourceDescriptor = source.SourceDescriptor.Clone()
	m.sources[source.ID] = &cp
	return nil
}

func (m *MockSourceStore) Get(ctx context.Context, id string) (*domain.Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	source, ok := m.sources[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *source
	cp.SourceDescriptor = source.SourceDescriptor.Clone()
	return &cp, nil
}

func (m *MockSourceStore) List(ctx context.Context) ([]*domain.Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Source, 0, len(m.sources))
	for _, source := range m.sources {
		cp := *source
		cp.SourceDescriptor = source.SourceDescriptor.Clone()
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockSourceStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sources[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sources, id)
	return nil
}

// Helper methods for testing

func (m *MockSourceStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = make(map[string]*domain.Source)
}

func (m *MockSourceStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sources)
}

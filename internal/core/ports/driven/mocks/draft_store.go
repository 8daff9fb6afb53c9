package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

var _ driven.DraftStore = (*MockDraftStore)(nil)

// MockDraftStore is an in-memory DraftStore. Sessions are stored as JSON
// so callers never share state with the store, as with a real backend.
type MockDraftStore struct {
	mu     sync.RWMutex
	drafts map[string][]byte

	// SaveErr, when set, is returned by Save
	SaveErr error
}

// NewMockDraftStore creates a new MockDraftStore
func NewMockDraftStore() *MockDraftStore {
	return &MockDraftStore{drafts: make(map[string][]byte)}
}

func (m *MockDraftStore) Save(ctx context.Context, session *domain.EditorSession) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[session.ID] = data
	return nil
}

func (m *MockDraftStore) Get(ctx context.Context, id string) (*domain.EditorSession, error) {
	m.mu.RLock()
	data, ok := m.drafts[id]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	var session domain.EditorSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

func (m *MockDraftStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

// Count returns the number of stored drafts
func (m *MockDraftStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.drafts)
}

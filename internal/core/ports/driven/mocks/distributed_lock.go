package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

var _ driven.DistributedLock = (*MockDistributedLock)(nil)

// MockDistributedLock keeps locks in memory with TTLs.
// The Fn hooks replace the default behaviour when set.
type MockDistributedLock struct {
	mu       sync.Mutex
	expiry   map[string]time.Time
	acquired int

	AcquireFn func(name string, ttl time.Duration) (bool, error)
	ReleaseFn func(name string) error
}

// NewMockDistributedLock creates a new mock distributed lock.
func NewMockDistributedLock() *MockDistributedLock {
	return &MockDistributedLock{expiry: make(map[string]time.Time)}
}

func (m *MockDistributedLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if m.AcquireFn != nil {
		return m.AcquireFn(name, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if exp, held := m.expiry[name]; held && time.Now().Before(exp) {
		return false, nil
	}
	m.expiry[name] = time.Now().Add(ttl)
	m.acquired++
	return true, nil
}

func (m *MockDistributedLock) Release(ctx context.Context, name string) error {
	if m.ReleaseFn != nil {
		return m.ReleaseFn(name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.expiry, name)
	return nil
}

func (m *MockDistributedLock) Extend(ctx context.Context, name string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, held := m.expiry[name]
	if !held || time.Now().After(exp) {
		return fmt.Errorf("lock %s not held", name)
	}
	m.expiry[name] = time.Now().Add(ttl)
	return nil
}

func (m *MockDistributedLock) Ping(ctx context.Context) error {
	return nil
}

// IsHeld checks if a lock is currently held (for test assertions).
func (m *MockDistributedLock) IsHeld(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, held := m.expiry[name]
	return held && time.Now().Before(exp)
}

// Hold forces a lock to be held by someone else (for test setup).
func (m *MockDistributedLock) Hold(name string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expiry[name] = time.Now().Add(ttl)
}

// Acquisitions returns how many times Acquire succeeded.
func (m *MockDistributedLock) Acquisitions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquired
}

package mocks

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

var _ driven.AuthAdapter = (*MockAuthAdapter)(nil)

const mockTokenPrefix = "mock."

// MockAuthAdapter stores passwords as "plain:<password>" and tokens as
// base64 JSON claims. NOT secure - only for testing.
type MockAuthAdapter struct{}

// NewMockAuthAdapter creates a new MockAuthAdapter
func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{}
}

func (m *MockAuthAdapter) HashPassword(password string) (string, error) {
	return "plain:" + password, nil
}

func (m *MockAuthAdapter) VerifyPassword(password, hash string) bool {
	return hash == "plain:"+password
}

func (m *MockAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}
	return mockTokenPrefix + base64.RawURLEncoding.EncodeToString(data), nil
}

// ParseToken mirrors the real adapter's errors: malformed tokens are
// ErrTokenInvalid and stale ones ErrTokenExpired.
func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	encoded, ok := strings.CutPrefix(token, mockTokenPrefix)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	var claims domain.TokenClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if claims.IsExpired() {
		return nil, domain.ErrTokenExpired
	}
	return &claims, nil
}

package domain

import (
	"testing"
	"time"
)

func TestTokenClaimsIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{
			name:      "expired token",
			expiresAt: time.Now().Add(-1 * time.Hour),
			expected:  true,
		},
		{
			name:      "valid token",
			expiresAt: time.Now().Add(1 * time.Hour),
			expected:  false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &TokenClaims{ExpiresAt: tt.expiresAt.Unix()}
			if claims.IsExpired() != tt.expected {
				t.Errorf("expected IsExpired() = %v", tt.expected)
			}
		})
	}
}

func TestAuthContextIsAdmin(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{RoleAdmin, true},
		{RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			ctx := &AuthContext{Role: tt.role}
			if ctx.IsAdmin() != tt.expected {
				t.Errorf("expected IsAdmin() = %v for role %s", tt.expected, tt.role)
			}
		})
	}
}

func TestLoginResponse(t *testing.T) {
	expiresAt := time.Now().Add(24 * time.Hour)
	resp := LoginResponse{
		Token:     "jwt-token",
		ExpiresAt: expiresAt,
		User:      &AccountSummary{ID: "acct-1", Email: "admin@example.com", Role: RoleAdmin},
	}

	if resp.Token != "jwt-token" {
		t.Errorf("expected token jwt-token, got %s", resp.Token)
	}
	if !resp.ExpiresAt.Equal(expiresAt) {
		t.Errorf("expected ExpiresAt %v, got %v", expiresAt, resp.ExpiresAt)
	}
	if resp.User.Role != RoleAdmin {
		t.Errorf("expected role admin, got %s", resp.User.Role)
	}
}

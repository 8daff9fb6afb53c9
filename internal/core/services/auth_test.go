package services

import (
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven/mocks"
)

func newTestAuthService(t *testing.T) (*mocks.MockAuthAdapter, *authService) {
	t.Helper()
	authAdapter := mocks.NewMockAuthAdapter()
	hash, _ := authAdapter.HashPassword("password123")
	accounts := []*domain.Account{
		{ID: "admin", Email: "Admin@Example.com", PasswordHash: hash, Role: domain.RoleAdmin},
		{ID: "viewer", Email: "viewer@example.com", PasswordHash: hash, Role: domain.RoleViewer},
	}
	svc := NewAuthService(accounts, authAdapter, time.Hour).(*authService)
	return authAdapter, svc
}

func TestAuthService_Authenticate(t *testing.T) {
	_, svc := newTestAuthService(t)

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{
			name:    "valid credentials",
			req:     domain.LoginRequest{Email: "admin@example.com", Password: "password123"},
			wantErr: nil,
		},
		{
			name:    "email is case insensitive",
			req:     domain.LoginRequest{Email: " ADMIN@example.com ", Password: "password123"},
			wantErr: nil,
		},
		{
			name:    "empty email",
			req:     domain.LoginRequest{Email: "", Password: "password123"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "empty password",
			req:     domain.LoginRequest{Email: "admin@example.com", Password: ""},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "wrong password",
			req:     domain.LoginRequest{Email: "admin@example.com", Password: "wrongpassword"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "unknown account",
			req:     domain.LoginRequest{Email: "unknown@example.com", Password: "password123"},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Authenticate(context.Background(), tt.req)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected token to be generated")
			}
			if resp.User.Role != domain.RoleAdmin {
				t.Errorf("expected role admin, got %s", resp.User.Role)
			}
			if time.Until(resp.ExpiresAt) > time.Hour {
				t.Errorf("expected expiry within token TTL, got %v", resp.ExpiresAt)
			}
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	_, svc := newTestAuthService(t)

	resp, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "viewer@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	authCtx, err := svc.ValidateToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authCtx.UserID != "viewer" {
		t.Errorf("expected user viewer, got %s", authCtx.UserID)
	}
	if authCtx.IsAdmin() {
		t.Error("expected viewer not to be admin")
	}
	if authCtx.SessionID == "" {
		t.Error("expected session id in auth context")
	}
}

func TestAuthService_ValidateToken_Errors(t *testing.T) {
	authAdapter, svc := newTestAuthService(t)

	expired, _ := authAdapter.GenerateToken(&domain.TokenClaims{
		UserID:    "admin",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	})
	unknown, _ := authAdapter.GenerateToken(&domain.TokenClaims{
		UserID:    "removed",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty token", "", domain.ErrTokenInvalid},
		{"garbage", "not-a-token", domain.ErrTokenInvalid},
		{"expired", expired, domain.ErrTokenExpired},
		{"account no longer configured", unknown, domain.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(context.Background(), tt.token)
			if err != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

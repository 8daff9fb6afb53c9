package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// DefaultTokenTTL is how long an issued token stays valid
const DefaultTokenTTL = 24 * time.Hour

// authService implements the AuthService interface over a fixed set of
// accounts provisioned from configuration
type authService struct {
	byEmail     map[string]*domain.Account
	byID        map[string]*domain.Account
	authAdapter driven.AuthAdapter
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accounts []*domain.Account,
	authAdapter driven.AuthAdapter,
	tokenTTL time.Duration,
) driving.AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	s := &authService{
		byEmail:     make(map[string]*domain.Account, len(accounts)),
		byID:        make(map[string]*domain.Account, len(accounts)),
		authAdapter: authAdapter,
		tokenTTL:    tokenTTL,
	}
	for _, a := range accounts {
		s.byEmail[normalizeEmail(a.Email)] = a
		s.byID[a.ID] = a
	}
	return s
}

// Authenticate validates credentials and issues a token
func (s *authService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	account, ok := s.byEmail[normalizeEmail(req.Email)]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.authAdapter.VerifyPassword(req.Password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &domain.TokenClaims{
		UserID:    account.ID,
		Email:     account.Email,
		Role:      account.Role,
		SessionID: generateID(),
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      account.ToSummary(),
	}, nil
}

// ValidateToken validates a JWT token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if claims.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// tokens outlive config changes; a removed account loses access
	account, ok := s.byID[claims.UserID]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{
		UserID:    account.ID,
		Email:     account.Email,
		Role:      account.Role,
		SessionID: claims.SessionID,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Helper functions

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

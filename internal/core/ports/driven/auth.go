package driven

import "github.com/custodia-labs/descriptor-studio/internal/core/domain"

// AuthAdapter handles authentication cryptographic operations.
// Accounts come from configuration; nothing here touches storage.
type AuthAdapter interface {
	// Password operations
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool

	// Token operations
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}

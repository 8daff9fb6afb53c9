package domain

// Role defines account permission level
type Role string

const (
	RoleAdmin  Role = "admin"  // Create and delete sources, run editor sessions
	RoleViewer Role = "viewer" // Read sources and filter catalogs
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// Account is an operator allowed to sign in to the admin API.
// Accounts are provisioned from configuration, not stored.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize
	Role         Role   `json:"role"`
}

// AccountSummary provides a safe view of account data (no password hash)
type AccountSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// ToSummary converts an Account to AccountSummary
func (a *Account) ToSummary() *AccountSummary {
	return &AccountSummary{
		ID:    a.ID,
		Email: a.Email,
		Role:  a.Role,
	}
}

// CanManageSources checks if the account can create/delete sources
func (a *Account) CanManageSources() bool {
	return a.Role == RoleAdmin
}

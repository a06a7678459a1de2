package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a registered business owner and their prepaid wallet.
// WalletBalance is never written directly; it changes only through the
// ledger credit/debit operations which update balance and ledger atomically.
type User struct {
	UserID        string          `json:"userID"` // Primary Key (UUID)
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	PasswordHash  string          `json:"-"` // Empty for OAuth-only users
	AuthProvider  AuthProvider    `json:"authProvider"`
	GoogleID      string          `json:"-"` // Subject claim from Google, empty for local users
	WalletBalance decimal.Decimal `json:"walletBalance"`

	// Refresh token state; the raw token is never stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete; cascades to owned catalog entries
}

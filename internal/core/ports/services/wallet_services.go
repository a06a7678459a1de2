package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/synchroai/synchro_backend/internal/core/domain"
)

// WalletReaderSvc defines read operations on a user's wallet.
type WalletReaderSvc interface {
	// GetBalance returns the current wallet balance.
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)

	// ListLedger returns up to limit ledger entries, newest first by createdAt.
	ListLedger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)

	// FindLedgerEntryByRef returns the entry recorded for an external payment
	// reference, or apperrors.ErrNotFound when no entry carries the ref.
	FindLedgerEntryByRef(ctx context.Context, userID string, externalRef string) (*domain.LedgerEntry, error)
}

// WalletWriterSvc defines the balance-mutating operations. These are the only
// paths that change a wallet balance anywhere in the system.
type WalletWriterSvc interface {
	// Credit appends a credit entry and increases the balance, returning the
	// new balance. externalRef deduplicates repeated payment confirmations:
	// a ref already recorded for the user fails with apperrors.ErrDuplicate.
	Credit(ctx context.Context, userID string, amount decimal.Decimal, description, externalRef string) (decimal.Decimal, error)

	// Debit appends a debit entry and decreases the balance, returning the
	// new balance. Fails with apperrors.ErrInsufficientFunds if amount
	// exceeds the current balance.
	Debit(ctx context.Context, userID string, amount decimal.Decimal, description string) (decimal.Decimal, error)
}

// WalletSvcFacade combines all wallet service interfaces.
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
}

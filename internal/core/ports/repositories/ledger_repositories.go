package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/synchroai/synchro_backend/internal/core/domain"
)

// LedgerReader defines read operations for wallet ledger data.
type LedgerReader interface {
	// ListEntriesByUser retrieves ledger entries for a user, newest first.
	// The ordering is applied by the caller-visible contract regardless of
	// whether the backing store can satisfy an ordered query.
	ListEntriesByUser(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)

	// FindEntryByExternalRef retrieves the entry recorded for a given
	// payment-session reference, if any.
	FindEntryByExternalRef(ctx context.Context, userID string, externalRef string) (*domain.LedgerEntry, error)
}

// LedgerWriter defines the single mutating operation on the wallet.
type LedgerWriter interface {
	// AppendEntry atomically appends a ledger entry and applies its signed
	// amount to the owner's wallet balance, returning the new balance.
	// The owner row is locked for the duration so concurrent credits and
	// debits serialize per user.
	//
	// Returns apperrors.ErrDuplicate when entry.ExternalRef is already
	// recorded for the user, and apperrors.ErrInsufficientFunds when a debit
	// would take the balance below zero. In both cases nothing is written.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (decimal.Decimal, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection indicates whether a ledger entry credits or debits the wallet.
type EntryDirection string

const (
	Credit EntryDirection = "CREDIT"
	Debit  EntryDirection = "DEBIT"
)

// LedgerEntry is one append-only record of a wallet balance change.
// Entries are never mutated or deleted; the wallet balance of a user must
// equal the signed sum of their entries at all times.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`  // FK -> users.user_id
	Direction   EntryDirection  `json:"direction"`
	Amount      decimal.Decimal `json:"amount"` // Always positive; sign comes from Direction
	Description string          `json:"description"`
	// ExternalRef correlates a payment-gateway session to at most one credit.
	// Unique per user when set; empty for internal debits.
	ExternalRef string    `json:"externalRef,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SignedAmount returns the amount with the sign implied by the direction.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Direction == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}

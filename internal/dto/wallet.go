package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/synchroai/synchro_backend/internal/core/domain"
)

// StartTopUpRequest defines the data needed to begin a wallet top-up.
type StartTopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// StartTopUpResponse returns the checkout session handle for the caller to redirect to.
type StartTopUpResponse struct {
	SessionID   string `json:"sessionID"`
	RedirectURL string `json:"redirectURL"`
}

// ConfirmTopUpResponse returns the wallet balance after a confirmed top-up.
type ConfirmTopUpResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// BalanceResponse defines the data returned for a wallet balance query.
type BalanceResponse struct {
	UserID  string          `json:"userID"`
	Balance decimal.Decimal `json:"balance"`
}

// ListLedgerParams defines query parameters for listing ledger entries.
type ListLedgerParams struct {
	Limit int `form:"limit,default=10"`
}

// LedgerEntryResponse defines the data returned for a single ledger entry.
type LedgerEntryResponse struct {
	EntryID     string                `json:"entryID"`
	Direction   domain.EntryDirection `json:"direction"`
	Amount      decimal.Decimal       `json:"amount"`
	Description string                `json:"description"`
	ExternalRef string                `json:"externalRef,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// ListLedgerResponse wraps the list of ledger entries, newest first.
type ListLedgerResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:     e.EntryID,
		Direction:   e.Direction,
		Amount:      e.Amount,
		Description: e.Description,
		ExternalRef: e.ExternalRef,
		CreatedAt:   e.CreatedAt,
	}
}

// ToListLedgerResponse converts a slice of domain.LedgerEntry to ListLedgerResponse.
func ToListLedgerResponse(entries []domain.LedgerEntry) ListLedgerResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(e)
	}
	return ListLedgerResponse{Entries: res}
}

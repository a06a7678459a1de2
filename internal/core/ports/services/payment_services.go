package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/synchroai/synchro_backend/internal/dto"
)

// CheckoutSession is the gateway-neutral view of an external checkout session.
// Amounts cross the gateway boundary in minor currency units (cents).
type CheckoutSession struct {
	SessionID   string
	RedirectURL string
	UserID      string // From session metadata
	AmountCents int64
	Paid        bool
}

// CheckoutGateway abstracts the external payment provider. Implementations
// must be safe to re-invoke: the caller relies on the ledger's externalRef
// uniqueness for exactly-once crediting, not on the gateway.
type CheckoutGateway interface {
	// CreateSession creates a checkout session for a wallet top-up and
	// returns the redirect handle.
	CreateSession(ctx context.Context, userID string, amount decimal.Decimal, originURL string) (*CheckoutSession, error)

	// GetSession fetches the current state of a checkout session.
	GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// ParseWebhook verifies the webhook signature and, for completed
	// checkout events, returns the session. Returns (nil, nil) for event
	// types the platform does not care about.
	ParseWebhook(payload []byte, signature string) (*CheckoutSession, error)
}

// TopUpSvcFacade bridges the checkout gateway to the wallet ledger.
type TopUpSvcFacade interface {
	// StartTopUp validates the amount against the platform range (5-1000 USD)
	// and creates a checkout session keyed by a fresh external reference.
	StartTopUp(ctx context.Context, userID string, amount decimal.Decimal, originURL string) (*dto.StartTopUpResponse, error)

	// ConfirmTopUp fetches the session and, if paid, credits the wallet once.
	// Repeated confirmations of the same session return the current balance
	// without crediting again.
	ConfirmTopUp(ctx context.Context, userID string, sessionID string) (decimal.Decimal, error)

	// HandleWebhook processes an asynchronous gateway event; crediting is
	// idempotent with ConfirmTopUp via the shared external reference.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

package domain

import "time"

// OrderPaymentStatus is the verification state of a customer order.
// Transitions are one-directional: pending -> confirmed | rejected.
// Once terminal, an order is immutable.
type OrderPaymentStatus string

const (
	OrderPending   OrderPaymentStatus = "pending"
	OrderConfirmed OrderPaymentStatus = "confirmed"
	OrderRejected  OrderPaymentStatus = "rejected"
)

// IsTerminal reports whether the status permits no further transitions.
func (s OrderPaymentStatus) IsTerminal() bool {
	return s == OrderConfirmed || s == OrderRejected
}

// OrderRecord is one end-customer order captured by an order-bot service
// instance. Orders are created by the external messaging channel and read-only
// from the owner's dashboard; only the verification step mutates them.
type OrderRecord struct {
	OrderID        string             `json:"orderID"`        // Primary Key (UUID)
	ServiceEntryID string             `json:"serviceEntryID"` // Back-reference to the catalog entry
	CustomerPhone  string             `json:"customerPhone"`
	ProductRef     string             `json:"productRef"`
	PaymentStatus  OrderPaymentStatus `json:"paymentStatus"`
	ProofURL       string             `json:"proofURL,omitempty"` // Blob store URL of the payment receipt
	CreatedAt      time.Time          `json:"createdAt"`
	VerifiedAt     *time.Time         `json:"verifiedAt,omitempty"`
}

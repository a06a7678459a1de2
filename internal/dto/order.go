package dto

import (
	"time"

	"github.com/synchroai/synchro_backend/internal/core/domain"
)

// CreateOrderRequest defines the data the external order channel reports for a new order.
type CreateOrderRequest struct {
	CustomerPhone string `json:"customerPhone" binding:"required"`
	ProductRef    string `json:"productRef" binding:"required"`
}

// VerifyOrderRequest moves a pending order to a terminal payment status.
type VerifyOrderRequest struct {
	Status domain.OrderPaymentStatus `json:"status" binding:"required,oneof=confirmed rejected"`
}

// UploadProofResponse returns the blob store URL of an uploaded payment receipt.
type UploadProofResponse struct {
	ProofURL string `json:"proofURL"`
}

// OrderResponse defines the data returned for an order record.
type OrderResponse struct {
	OrderID        string                    `json:"orderID"`
	ServiceEntryID string                    `json:"serviceEntryID"`
	CustomerPhone  string                    `json:"customerPhone"`
	ProductRef     string                    `json:"productRef"`
	PaymentStatus  domain.OrderPaymentStatus `json:"paymentStatus"`
	ProofURL       string                    `json:"proofURL,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	VerifiedAt     *time.Time                `json:"verifiedAt,omitempty"`
}

// ListOrdersParams defines query parameters for listing a service's orders.
type ListOrdersParams struct {
	Status string `form:"status"` // Optional filter: pending|confirmed|rejected
}

// ListOrdersResponse wraps the orders of one service entry, newest first.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// ToOrderResponse converts a domain.OrderRecord to its DTO.
func ToOrderResponse(o *domain.OrderRecord) OrderResponse {
	return OrderResponse{
		OrderID:        o.OrderID,
		ServiceEntryID: o.ServiceEntryID,
		CustomerPhone:  o.CustomerPhone,
		ProductRef:     o.ProductRef,
		PaymentStatus:  o.PaymentStatus,
		ProofURL:       o.ProofURL,
		CreatedAt:      o.CreatedAt,
		VerifiedAt:     o.VerifiedAt,
	}
}

// ToListOrdersResponse converts a slice of orders to ListOrdersResponse.
func ToListOrdersResponse(orders []domain.OrderRecord) ListOrdersResponse {
	res := make([]OrderResponse, len(orders))
	for i := range orders {
		res[i] = ToOrderResponse(&orders[i])
	}
	return ListOrdersResponse{Orders: res}
}

package services

import (
	"context"

	"github.com/synchroai/synchro_backend/internal/core/domain"
	"github.com/synchroai/synchro_backend/internal/dto"
)

// BlobStore abstracts the external blob storage used for catalog attachments
// and order payment proofs. Upload returns a retrievable URL.
type BlobStore interface {
	Upload(ctx context.Context, folder, fileName string, data []byte, contentType string) (string, error)
}

// OrderSvcFacade manages order records captured by order-bot service entries.
// Reads are ownership-checked against the parent catalog entry's owner.
type OrderSvcFacade interface {
	// CreateOrder records a new order reported by the external order channel.
	CreateOrder(ctx context.Context, serviceEntryID string, req dto.CreateOrderRequest) (*domain.OrderRecord, error)

	// ListOrders returns the orders of a catalog entry, newest first,
	// optionally filtered by payment status.
	ListOrders(ctx context.Context, serviceEntryID string, requesterID string, status domain.OrderPaymentStatus) ([]domain.OrderRecord, error)

	// UploadProof stores a payment receipt image in the blob store and
	// attaches its URL to a pending order.
	UploadProof(ctx context.Context, orderID string, requesterID string, data []byte, contentType string) (string, error)

	// VerifyOrder moves a pending order to confirmed or rejected. Terminal
	// orders are immutable; a second verification fails with
	// apperrors.ErrInvalidTransition.
	VerifyOrder(ctx context.Context, orderID string, requesterID string, status domain.OrderPaymentStatus) (*domain.OrderRecord, error)
}

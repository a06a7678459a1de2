package repositories

import (
	"context"
	"time"

	"github.com/synchroai/synchro_backend/internal/core/domain"
)

// OrderReader defines read operations for order records.
type OrderReader interface {
	// FindOrderByID retrieves an order by its unique identifier.
	FindOrderByID(ctx context.Context, orderID string) (*domain.OrderRecord, error)

	// ListOrdersByServiceEntry retrieves orders captured for a catalog entry,
	// newest first, optionally filtered by payment status.
	ListOrdersByServiceEntry(ctx context.Context, serviceEntryID string, status domain.OrderPaymentStatus) ([]domain.OrderRecord, error)
}

// OrderWriter defines write operations for order records.
type OrderWriter interface {
	// SaveOrder persists a new order record.
	SaveOrder(ctx context.Context, order domain.OrderRecord) error

	// UpdateOrderStatus moves a pending order to a terminal payment status.
	// Returns apperrors.ErrInvalidTransition if the order is already terminal.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderPaymentStatus, verifiedAt time.Time) error

	// AttachProof stores the blob URL of the payment receipt on a pending order.
	AttachProof(ctx context.Context, orderID string, proofURL string) error
}

// OrderRepositoryFacade combines all order repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

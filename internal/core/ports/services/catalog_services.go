package services

import (
	"context"

	"github.com/synchroai/synchro_backend/internal/core/domain"
	"github.com/synchroai/synchro_backend/internal/dto"
)

// CatalogReaderSvc defines read operations for catalog entries.
// Every operation takes the requester's user id and enforces ownership
// server-side; a mismatch fails with apperrors.ErrForbidden.
type CatalogReaderSvc interface {
	// GetService retrieves a single catalog entry.
	GetService(ctx context.Context, entryID string, requesterID string) (*domain.ServiceCatalogEntry, error)

	// ListByOwner returns all catalog entries for the owner, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ServiceCatalogEntry, error)
}

// CatalogWriterSvc defines lifecycle operations for catalog entries.
type CatalogWriterSvc interface {
	// CreateService validates the type-specific payload, debits the purchase
	// price from the owner's wallet and persists the entry. For custom
	// agents the consultation is scheduled as a best-effort side effect
	// after the entry is committed.
	CreateService(ctx context.Context, ownerID string, req dto.CreateServiceRequest) (*domain.ServiceCatalogEntry, error)

	// UpdateService merges the payload into the entry's type-specific fields.
	// The entry type is immutable; a differing type fails with
	// apperrors.ErrImmutableField.
	UpdateService(ctx context.Context, entryID string, requesterID string, req dto.UpdateServiceRequest) (*domain.ServiceCatalogEntry, error)

	// ToggleStatus flips active<->paused. A pending entry cannot be toggled
	// and fails with apperrors.ErrInvalidTransition.
	ToggleStatus(ctx context.Context, entryID string, requesterID string) (*domain.ServiceCatalogEntry, error)

	// DeleteService removes the entry. Associated orders are retained.
	DeleteService(ctx context.Context, entryID string, requesterID string) error
}

// CatalogSvcFacade combines all catalog service interfaces.
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
}

package repositories

import (
	"context"

	"github.com/synchroai/synchro_backend/internal/core/domain"
)

// ServiceReader defines read operations for catalog entries.
type ServiceReader interface {
	// FindEntryByID retrieves a catalog entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.ServiceCatalogEntry, error)

	// ListEntriesByOwner retrieves all catalog entries owned by a user, newest first.
	ListEntriesByOwner(ctx context.Context, ownerID string) ([]domain.ServiceCatalogEntry, error)
}

// ServiceWriter defines write operations for catalog entries.
type ServiceWriter interface {
	// SaveEntry persists a new catalog entry.
	SaveEntry(ctx context.Context, entry domain.ServiceCatalogEntry) error

	// UpdateEntry updates an existing catalog entry's mutable fields.
	UpdateEntry(ctx context.Context, entry domain.ServiceCatalogEntry) error

	// DeleteEntry removes a catalog entry. Associated order records are
	// retained; they keep the entry id as a dangling back-reference.
	DeleteEntry(ctx context.Context, entryID string) error
}

// ServiceRepositoryFacade combines all catalog repository interfaces.
type ServiceRepositoryFacade interface {
	ServiceReader
	ServiceWriter
}

package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/core/domain"
	portsrepo "github.com/synchroai/synchro_backend/internal/core/ports/repositories"
)

type PgxServiceRepository struct {
	db *pgxpool.Pool
}

func newPgxServiceRepository(db *pgxpool.Pool) portsrepo.ServiceRepositoryFacade {
	return &PgxServiceRepository{db: db}
}

// Ensure PgxServiceRepository implements portsrepo.ServiceRepositoryFacade
var _ portsrepo.ServiceRepositoryFacade = (*PgxServiceRepository)(nil)

// marshalConfig serializes whichever variant config the entry carries into
// the JSONB config column.
func marshalConfig(entry domain.ServiceCatalogEntry) ([]byte, error) {
	switch entry.Type {
	case domain.ServiceFAQBot:
		return json.Marshal(entry.FAQBot)
	case domain.ServiceOrderBot:
		return json.Marshal(entry.OrderBot)
	case domain.ServiceCustomAgent:
		return json.Marshal(entry.CustomAgent)
	}
	return nil, fmt.Errorf("unknown service type %q", entry.Type)
}

// unmarshalConfig hydrates the variant config pointer matching the entry type.
func unmarshalConfig(entry *domain.ServiceCatalogEntry, raw []byte) error {
	switch entry.Type {
	case domain.ServiceFAQBot:
		entry.FAQBot = &domain.FAQBotConfig{}
		return json.Unmarshal(raw, entry.FAQBot)
	case domain.ServiceOrderBot:
		entry.OrderBot = &domain.OrderBotConfig{}
		return json.Unmarshal(raw, entry.OrderBot)
	case domain.ServiceCustomAgent:
		entry.CustomAgent = &domain.CustomAgentConfig{}
		return json.Unmarshal(raw, entry.CustomAgent)
	}
	return fmt.Errorf("unknown service type %q", entry.Type)
}

func scanServiceEntry(row pgx.Row) (*domain.ServiceCatalogEntry, error) {
	var entry domain.ServiceCatalogEntry
	var rawConfig []byte
	err := row.Scan(
		&entry.EntryID,
		&entry.UserID,
		&entry.Type,
		&entry.Status,
		&entry.DisplayName,
		&entry.Price,
		&rawConfig,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalConfig(&entry, rawConfig); err != nil {
		return nil, fmt.Errorf("failed to decode config for entry %s: %w", entry.EntryID, err)
	}
	return &entry, nil
}

const serviceColumns = `
	entry_id, user_id, service_type, status, display_name, price, config,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *PgxServiceRepository) SaveEntry(ctx context.Context, entry domain.ServiceCatalogEntry) error {
	rawConfig, err := marshalConfig(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode service config", err)
	}
	query := `
		INSERT INTO service_entries (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = r.db.Exec(ctx, query,
		entry.EntryID,
		entry.UserID,
		entry.Type,
		entry.Status,
		entry.DisplayName,
		entry.Price,
		rawConfig,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save service entry: %w", err)
	}
	return nil
}

func (r *PgxServiceRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.ServiceCatalogEntry, error) {
	query := `SELECT ` + serviceColumns + ` FROM service_entries WHERE entry_id = $1;`
	entry, err := scanServiceEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find service entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (r *PgxServiceRepository) ListEntriesByOwner(ctx context.Context, ownerID string) ([]domain.ServiceCatalogEntry, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM service_entries
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query service entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.ServiceCatalogEntry{}
	for rows.Next() {
		entry, err := scanServiceEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating service entry rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxServiceRepository) UpdateEntry(ctx context.Context, entry domain.ServiceCatalogEntry) error {
	rawConfig, err := marshalConfig(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode service config", err)
	}
	query := `
		UPDATE service_entries
		SET status = $1, display_name = $2, config = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $6;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		entry.Status,
		entry.DisplayName,
		rawConfig,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		entry.EntryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxServiceRepository) DeleteEntry(ctx context.Context, entryID string) error {
	// Order records referencing the entry are kept; service_entry_id on
	// order_records is not a foreign key for that reason.
	query := `DELETE FROM service_entries WHERE entry_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete service entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/core/domain"
	portsrepo "github.com/synchroai/synchro_backend/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for wallet ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// AppendEntry writes the ledger entry and the updated wallet balance in a
// single DB transaction. The owner row is locked FOR UPDATE first, so the
// balance check, the insert, and the balance write serialize per user.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	// 1. Lock the owner row and read the current balance
	var balance decimal.Decimal
	lockQuery := `
		SELECT wallet_balance FROM users
		WHERE user_id = $1 AND deleted_at IS NULL
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, lockQuery, entry.UserID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to lock user row for ledger append", err)
	}

	// 2. Refuse a duplicate external reference before writing anything.
	// The partial unique index on (user_id, external_ref) backs this up
	// under concurrent appends that both pass the read.
	if entry.ExternalRef != "" {
		var exists bool
		dupQuery := `
			SELECT EXISTS (
				SELECT 1 FROM ledger_entries
				WHERE user_id = $1 AND external_ref = $2
			);
		`
		if err := tx.QueryRow(ctx, dupQuery, entry.UserID, entry.ExternalRef).Scan(&exists); err != nil {
			return decimal.Zero, apperrors.NewAppError(500, "failed to check external ref", err)
		}
		if exists {
			return decimal.Zero, apperrors.ErrDuplicate
		}
	}

	// 3. Enforce the non-negative balance floor on debits
	newBalance := balance.Add(entry.SignedAmount())
	if newBalance.IsNegative() {
		return decimal.Zero, apperrors.ErrInsufficientFunds
	}

	// 4. Insert the ledger entry
	insertQuery := `
		INSERT INTO ledger_entries (entry_id, user_id, direction, amount, description, external_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery,
		entry.EntryID,
		entry.UserID,
		entry.Direction,
		entry.Amount,
		entry.Description,
		nullIfEmpty(entry.ExternalRef),
		entry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return decimal.Zero, apperrors.ErrDuplicate
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to insert ledger entry "+entry.EntryID, err)
	}

	// 5. Write the new balance back to the locked row
	updateQuery := `
		UPDATE users SET wallet_balance = $1, last_updated_at = $2
		WHERE user_id = $3;
	`
	if _, err := tx.Exec(ctx, updateQuery, newBalance, entry.CreatedAt, entry.UserID); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to update wallet balance", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

func (r *PgxLedgerRepository) ListEntriesByUser(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT entry_id, user_id, direction, amount, description, external_ref, created_at
		FROM ledger_entries
		WHERE user_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", rows.Err())
	}

	return newestFirst(entries, limit), nil
}

// newestFirst orders ledger entries by creation time descending and truncates
// to limit. Ordering is part of the read contract, not the storage layout, so
// it is applied here after the fetch.
func newestFirst(entries []domain.LedgerEntry, limit int) []domain.LedgerEntry {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func (r *PgxLedgerRepository) FindEntryByExternalRef(ctx context.Context, userID string, externalRef string) (*domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, user_id, direction, amount, description, external_ref, created_at
		FROM ledger_entries
		WHERE user_id = $1 AND external_ref = $2;
	`
	entry, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, userID, externalRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry by external ref: %w", err)
	}
	return &entry, nil
}

func scanLedgerEntry(row pgx.Row) (domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var externalRef sql.NullString
	err := row.Scan(
		&e.EntryID,
		&e.UserID,
		&e.Direction,
		&e.Amount,
		&e.Description,
		&externalRef,
		&e.CreatedAt,
	)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	e.ExternalRef = externalRef.String
	return e, nil
}

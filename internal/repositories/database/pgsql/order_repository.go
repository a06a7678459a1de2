package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/core/domain"
	portsrepo "github.com/synchroai/synchro_backend/internal/core/ports/repositories"
)

type PgxOrderRepository struct {
	db *pgxpool.Pool
}

func newPgxOrderRepository(db *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{db: db}
}

// Ensure PgxOrderRepository implements portsrepo.OrderRepositoryFacade
var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `
	order_id, service_entry_id, customer_phone, product_ref, payment_status,
	proof_url, created_at, verified_at
`

func scanOrder(row pgx.Row) (*domain.OrderRecord, error) {
	var o domain.OrderRecord
	var proofURL sql.NullString
	var verifiedAt sql.NullTime
	err := row.Scan(
		&o.OrderID,
		&o.ServiceEntryID,
		&o.CustomerPhone,
		&o.ProductRef,
		&o.PaymentStatus,
		&proofURL,
		&o.CreatedAt,
		&verifiedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ProofURL = proofURL.String
	if verifiedAt.Valid {
		o.VerifiedAt = &verifiedAt.Time
	}
	return &o, nil
}

func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.OrderRecord) error {
	query := `
		INSERT INTO order_records (order_id, service_entry_id, customer_phone, product_ref, payment_status, proof_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		order.OrderID,
		order.ServiceEntryID,
		order.CustomerPhone,
		order.ProductRef,
		order.PaymentStatus,
		nullIfEmpty(order.ProofURL),
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.OrderRecord, error) {
	query := `SELECT ` + orderColumns + ` FROM order_records WHERE order_id = $1;`
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	return order, nil
}

func (r *PgxOrderRepository) ListOrdersByServiceEntry(ctx context.Context, serviceEntryID string, status domain.OrderPaymentStatus) ([]domain.OrderRecord, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM order_records
		WHERE service_entry_id = $1 AND ($2 = '' OR payment_status = $2)
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, serviceEntryID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.OrderRecord{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", rows.Err())
	}
	return orders, nil
}

func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderPaymentStatus, verifiedAt time.Time) error {
	// The pending guard in the WHERE clause makes the pending->terminal
	// transition a single atomic statement.
	query := `
		UPDATE order_records
		SET payment_status = $1, verified_at = $2
		WHERE order_id = $3 AND payment_status = 'pending';
	`
	cmdTag, err := r.db.Exec(ctx, query, status, verifiedAt, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing order from one already verified.
		if _, findErr := r.FindOrderByID(ctx, orderID); findErr != nil {
			return findErr
		}
		return apperrors.ErrInvalidTransition
	}
	return nil
}

func (r *PgxOrderRepository) AttachProof(ctx context.Context, orderID string, proofURL string) error {
	query := `
		UPDATE order_records
		SET proof_url = $1
		WHERE order_id = $2 AND payment_status = 'pending';
	`
	cmdTag, err := r.db.Exec(ctx, query, proofURL, orderID)
	if err != nil {
		return fmt.Errorf("failed to attach payment proof: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindOrderByID(ctx, orderID); findErr != nil {
			return findErr
		}
		return apperrors.ErrInvalidTransition
	}
	return nil
}

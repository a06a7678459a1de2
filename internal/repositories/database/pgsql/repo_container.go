package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/synchroai/synchro_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	serviceRepo := newPgxServiceRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:    userRepo,
		LedgerRepo:  ledgerRepo,
		ServiceRepo: serviceRepo,
		OrderRepo:   orderRepo,
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/core/domain"
	portsrepo "github.com/synchroai/synchro_backend/internal/core/ports/repositories"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
)

// walletServiceImpl implements the WalletSvcFacade interface. It is the only
// path in the system that mutates wallet balances, and it does so exclusively
// by appending ledger entries.
type walletServiceImpl struct {
	BaseService
	userRepo   portsrepo.UserReader
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewWalletService creates a new wallet service.
func NewWalletService(userRepo portsrepo.UserReader, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletServiceImpl{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
}

// Ensure walletServiceImpl implements the WalletSvcFacade interface
var _ portssvc.WalletSvcFacade = (*walletServiceImpl)(nil)

func (s *walletServiceImpl) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch user for balance: %w", err)
	}
	return user.WalletBalance, nil
}

func (s *walletServiceImpl) ListLedger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.ledgerRepo.ListEntriesByUser(ctx, userID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("user_id", userID))
		return nil, err
	}
	return entries, nil
}

func (s *walletServiceImpl) FindLedgerEntryByRef(ctx context.Context, userID string, externalRef string) (*domain.LedgerEntry, error) {
	return s.ledgerRepo.FindEntryByExternalRef(ctx, userID, externalRef)
}

func (s *walletServiceImpl) Credit(ctx context.Context, userID string, amount decimal.Decimal, description, externalRef string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("credit amount must be positive: %w", apperrors.ErrValidation)
	}
	return s.append(ctx, domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		UserID:      userID,
		Direction:   domain.Credit,
		Amount:      amount,
		Description: description,
		ExternalRef: externalRef,
		CreatedAt:   time.Now(),
	})
}

func (s *walletServiceImpl) Debit(ctx context.Context, userID string, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("debit amount must be positive: %w", apperrors.ErrValidation)
	}
	return s.append(ctx, domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		UserID:      userID,
		Direction:   domain.Debit,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	})
}

func (s *walletServiceImpl) append(ctx context.Context, entry domain.LedgerEntry) (decimal.Decimal, error) {
	newBalance, err := s.ledgerRepo.AppendEntry(ctx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to append ledger entry",
			slog.String("user_id", entry.UserID),
			slog.String("direction", string(entry.Direction)),
			slog.String("amount", entry.Amount.String()))
		return decimal.Zero, err
	}
	s.LogInfo(ctx, "Ledger entry appended",
		slog.String("entry_id", entry.EntryID),
		slog.String("user_id", entry.UserID),
		slog.String("direction", string(entry.Direction)),
		slog.String("amount", entry.Amount.String()),
		slog.String("new_balance", newBalance.String()))
	return newBalance, nil
}

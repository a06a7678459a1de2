package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/dto"
)

// Top-up amount bounds in USD.
var (
	minTopUpAmount = decimal.NewFromInt(5)
	maxTopUpAmount = decimal.NewFromInt(1000)
)

// topUpServiceImpl implements the TopUpSvcFacade interface. It bridges the
// external checkout gateway to the wallet ledger; the ledger's external-ref
// uniqueness is what makes crediting exactly-once, not the gateway.
type topUpServiceImpl struct {
	BaseService
	gateway portssvc.CheckoutGateway
	wallet  portssvc.WalletSvcFacade
}

// NewTopUpService creates a new top-up service.
func NewTopUpService(gateway portssvc.CheckoutGateway, wallet portssvc.WalletSvcFacade) portssvc.TopUpSvcFacade {
	return &topUpServiceImpl{gateway: gateway, wallet: wallet}
}

// Ensure topUpServiceImpl implements the TopUpSvcFacade interface
var _ portssvc.TopUpSvcFacade = (*topUpServiceImpl)(nil)

func (s *topUpServiceImpl) StartTopUp(ctx context.Context, userID string, amount decimal.Decimal, originURL string) (*dto.StartTopUpResponse, error) {
	if amount.LessThan(minTopUpAmount) || amount.GreaterThan(maxTopUpAmount) {
		return nil, fmt.Errorf("top-up amount must be between %s and %s USD: %w",
			minTopUpAmount.String(), maxTopUpAmount.String(), apperrors.ErrValidation)
	}

	session, err := s.gateway.CreateSession(ctx, userID, amount, originURL)
	if err != nil {
		s.LogError(ctx, err, "Failed to create checkout session", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Checkout session created",
		slog.String("session_id", session.SessionID),
		slog.String("user_id", userID),
		slog.String("amount", amount.String()))

	return &dto.StartTopUpResponse{
		SessionID:   session.SessionID,
		RedirectURL: session.RedirectURL,
	}, nil
}

func (s *topUpServiceImpl) ConfirmTopUp(ctx context.Context, userID string, sessionID string) (decimal.Decimal, error) {
	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	if session.UserID != userID {
		return decimal.Zero, apperrors.ErrForbidden
	}
	if !session.Paid {
		return decimal.Zero, fmt.Errorf("checkout session %s is not paid: %w", sessionID, apperrors.ErrPaymentNotCompleted)
	}
	return s.credit(ctx, session)
}

func (s *topUpServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	session, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if session == nil {
		// Event type we do not handle.
		return nil
	}
	if session.UserID == "" {
		s.LogWarn(ctx, "Webhook session without user metadata, ignoring",
			slog.String("session_id", session.SessionID))
		return nil
	}
	if !session.Paid {
		return nil
	}

	if _, err := s.credit(ctx, session); err != nil {
		return err
	}
	return nil
}

// credit applies the session amount to the wallet once. A session already
// recorded on the ledger is treated as success and returns the current
// balance, so the confirm endpoint and the webhook can race freely.
func (s *topUpServiceImpl) credit(ctx context.Context, session *portssvc.CheckoutSession) (decimal.Decimal, error) {
	amount := decimal.NewFromInt(session.AmountCents).Div(decimal.NewFromInt(100))

	balance, err := s.wallet.Credit(ctx, session.UserID, amount, "Wallet top-up", session.SessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Cross-check the recorded entry so a session replayed with a
			// different amount shows up in the logs.
			if recorded, findErr := s.wallet.FindLedgerEntryByRef(ctx, session.UserID, session.SessionID); findErr == nil && !recorded.Amount.Equal(amount) {
				s.LogWarn(ctx, "Recorded top-up amount differs from session amount",
					slog.String("session_id", session.SessionID),
					slog.String("recorded_amount", recorded.Amount.String()),
					slog.String("session_amount", amount.String()))
			}
			s.LogInfo(ctx, "Top-up already credited",
				slog.String("session_id", session.SessionID),
				slog.String("user_id", session.UserID))
			return s.wallet.GetBalance(ctx, session.UserID)
		}
		s.LogError(ctx, err, "Failed to credit top-up",
			slog.String("session_id", session.SessionID),
			slog.String("user_id", session.UserID))
		return decimal.Zero, err
	}

	s.LogInfo(ctx, "Wallet topped up",
		slog.String("session_id", session.SessionID),
		slog.String("user_id", session.UserID),
		slog.String("amount", amount.String()))
	return balance, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/core/domain"
	portsrepo "github.com/synchroai/synchro_backend/internal/core/ports/repositories"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/dto"
)

// orderServiceImpl implements the OrderSvcFacade interface
type orderServiceImpl struct {
	BaseService
	orderRepo   portsrepo.OrderRepositoryFacade
	serviceRepo portsrepo.ServiceReader
	blobStore   portssvc.BlobStore
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, serviceRepo portsrepo.ServiceReader, blobStore portssvc.BlobStore) portssvc.OrderSvcFacade {
	return &orderServiceImpl{
		orderRepo:   orderRepo,
		serviceRepo: serviceRepo,
		blobStore:   blobStore,
	}
}

// Ensure orderServiceImpl implements the OrderSvcFacade interface
var _ portssvc.OrderSvcFacade = (*orderServiceImpl)(nil)

func (s *orderServiceImpl) CreateOrder(ctx context.Context, serviceEntryID string, req dto.CreateOrderRequest) (*domain.OrderRecord, error) {
	entry, err := s.serviceRepo.FindEntryByID(ctx, serviceEntryID)
	if err != nil {
		return nil, err
	}
	if entry.Type != domain.ServiceOrderBot {
		return nil, fmt.Errorf("catalog entry %s is not an order bot: %w", serviceEntryID, apperrors.ErrValidation)
	}

	order := domain.OrderRecord{
		OrderID:        uuid.NewString(),
		ServiceEntryID: serviceEntryID,
		CustomerPhone:  req.CustomerPhone,
		ProductRef:     req.ProductRef,
		PaymentStatus:  domain.OrderPending,
		CreatedAt:      time.Now(),
	}
	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to save order", slog.String("service_entry_id", serviceEntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Order recorded",
		slog.String("order_id", order.OrderID),
		slog.String("service_entry_id", serviceEntryID))
	return &order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, serviceEntryID string, requesterID string, status domain.OrderPaymentStatus) ([]domain.OrderRecord, error) {
	if _, err := s.authorizeEntry(ctx, serviceEntryID, requesterID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListOrdersByServiceEntry(ctx, serviceEntryID, status)
}

func (s *orderServiceImpl) UploadProof(ctx context.Context, orderID string, requesterID string, data []byte, contentType string) (string, error) {
	order, err := s.authorizeOrder(ctx, orderID, requesterID)
	if err != nil {
		return "", err
	}
	if order.PaymentStatus.IsTerminal() {
		return "", fmt.Errorf("order %s is already %s: %w", orderID, order.PaymentStatus, apperrors.ErrInvalidTransition)
	}

	fileName := fmt.Sprintf("%s-%d", orderID, time.Now().UnixNano())
	url, err := s.blobStore.Upload(ctx, "payment-proofs", fileName, data, contentType)
	if err != nil {
		s.LogError(ctx, err, "Failed to upload payment proof", slog.String("order_id", orderID))
		return "", fmt.Errorf("failed to upload payment proof: %w", err)
	}

	if err := s.orderRepo.AttachProof(ctx, orderID, url); err != nil {
		return "", err
	}

	s.LogInfo(ctx, "Payment proof attached", slog.String("order_id", orderID))
	return url, nil
}

func (s *orderServiceImpl) VerifyOrder(ctx context.Context, orderID string, requesterID string, status domain.OrderPaymentStatus) (*domain.OrderRecord, error) {
	if !status.IsTerminal() {
		return nil, fmt.Errorf("verification status must be confirmed or rejected: %w", apperrors.ErrValidation)
	}

	if _, err := s.authorizeOrder(ctx, orderID, requesterID); err != nil {
		return nil, err
	}

	verifiedAt := time.Now()
	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status, verifiedAt); err != nil {
		s.LogError(ctx, err, "Failed to verify order", slog.String("order_id", orderID))
		return nil, err
	}

	s.LogInfo(ctx, "Order verified",
		slog.String("order_id", orderID),
		slog.String("status", string(status)))
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

// authorizeEntry confirms the requester owns the catalog entry.
func (s *orderServiceImpl) authorizeEntry(ctx context.Context, serviceEntryID string, requesterID string) (*domain.ServiceCatalogEntry, error) {
	entry, err := s.serviceRepo.FindEntryByID(ctx, serviceEntryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != requesterID {
		return nil, apperrors.ErrForbidden
	}
	return entry, nil
}

// authorizeOrder confirms the requester owns the entry that captured the order.
func (s *orderServiceImpl) authorizeOrder(ctx context.Context, orderID string, requesterID string) (*domain.OrderRecord, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeEntry(ctx, order.ServiceEntryID, requesterID); err != nil {
		return nil, err
	}
	return order, nil
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/core/domain"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/core/services"
	"github.com/synchroai/synchro_backend/internal/dto"
)

// MockOrderRepository is a mock type for the OrderRepositoryFacade interface
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.OrderRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderRecord), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByServiceEntry(ctx context.Context, serviceEntryID string, status domain.OrderPaymentStatus) ([]domain.OrderRecord, error) {
	args := m.Called(ctx, serviceEntryID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderRecord), args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.OrderRecord) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderPaymentStatus, verifiedAt time.Time) error {
	args := m.Called(ctx, orderID, status, verifiedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) AttachProof(ctx context.Context, orderID string, proofURL string) error {
	args := m.Called(ctx, orderID, proofURL)
	return args.Error(0)
}

// MockServiceReader is a mock type for the ServiceReader interface
type MockServiceReader struct {
	mock.Mock
}

func (m *MockServiceReader) FindEntryByID(ctx context.Context, entryID string) (*domain.ServiceCatalogEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceCatalogEntry), args.Error(1)
}

func (m *MockServiceReader) ListEntriesByOwner(ctx context.Context, ownerID string) ([]domain.ServiceCatalogEntry, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceCatalogEntry), args.Error(1)
}

// MockBlobStore is a mock type for the BlobStore interface
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, folder, fileName string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, folder, fileName, data, contentType)
	return args.String(0), args.Error(1)
}

// --- Test Suite Setup ---

type OrderServiceTestSuite struct {
	suite.Suite
	mockOrders   *MockOrderRepository
	mockServices *MockServiceReader
	mockBlobs    *MockBlobStore
	service      portssvc.OrderSvcFacade

	ownerID string
	entry   *domain.ServiceCatalogEntry
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrders = new(MockOrderRepository)
	suite.mockServices = new(MockServiceReader)
	suite.mockBlobs = new(MockBlobStore)
	suite.service = services.NewOrderService(suite.mockOrders, suite.mockServices, suite.mockBlobs)

	suite.ownerID = uuid.NewString()
	suite.entry = &domain.ServiceCatalogEntry{
		EntryID: uuid.NewString(),
		UserID:  suite.ownerID,
		Type:    domain.ServiceOrderBot,
		Status:  domain.StatusActive,
	}
}

// --- Test Cases ---

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{CustomerPhone: "+6281299988877", ProductRef: "SKU-42"}

	suite.mockServices.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.entry, nil).Once()
	suite.mockOrders.On("SaveOrder", ctx, mock.MatchedBy(func(o domain.OrderRecord) bool {
		return o.ServiceEntryID == suite.entry.EntryID &&
			o.PaymentStatus == domain.OrderPending &&
			o.CustomerPhone == req.CustomerPhone
	})).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, suite.entry.EntryID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderPending, order.PaymentStatus)
	suite.Nil(order.VerifiedAt)
	suite.mockOrders.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NotAnOrderBot() {
	ctx := context.Background()
	faqEntry := &domain.ServiceCatalogEntry{
		EntryID: uuid.NewString(),
		UserID:  suite.ownerID,
		Type:    domain.ServiceFAQBot,
	}

	suite.mockServices.On("FindEntryByID", ctx, faqEntry.EntryID).Return(faqEntry, nil).Once()

	_, err := suite.service.CreateOrder(ctx, faqEntry.EntryID, dto.CreateOrderRequest{CustomerPhone: "+628", ProductRef: "x"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrders.AssertNotCalled(suite.T(), "SaveOrder")
}

func (suite *OrderServiceTestSuite) TestListOrders_ForbiddenForNonOwner() {
	ctx := context.Background()

	suite.mockServices.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.entry, nil).Once()

	_, err := suite.service.ListOrders(ctx, suite.entry.EntryID, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *OrderServiceTestSuite) TestVerifyOrder_PendingToConfirmed() {
	ctx := context.Background()
	order := &domain.OrderRecord{
		OrderID:        uuid.NewString(),
		ServiceEntryID: suite.entry.EntryID,
		PaymentStatus:  domain.OrderPending,
	}
	verified := &domain.OrderRecord{
		OrderID:        order.OrderID,
		ServiceEntryID: suite.entry.EntryID,
		PaymentStatus:  domain.OrderConfirmed,
	}

	suite.mockOrders.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockServices.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.entry, nil).Once()
	suite.mockOrders.On("UpdateOrderStatus", ctx, order.OrderID, domain.OrderConfirmed, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockOrders.On("FindOrderByID", ctx, order.OrderID).Return(verified, nil).Once()

	got, err := suite.service.VerifyOrder(ctx, order.OrderID, suite.ownerID, domain.OrderConfirmed)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderConfirmed, got.PaymentStatus)
	suite.mockOrders.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestVerifyOrder_AlreadyTerminal() {
	ctx := context.Background()
	order := &domain.OrderRecord{
		OrderID:        uuid.NewString(),
		ServiceEntryID: suite.entry.EntryID,
		PaymentStatus:  domain.OrderConfirmed,
	}

	suite.mockOrders.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockServices.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.entry, nil).Once()
	suite.mockOrders.On("UpdateOrderStatus", ctx, order.OrderID, domain.OrderRejected, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInvalidTransition).Once()

	_, err := suite.service.VerifyOrder(ctx, order.OrderID, suite.ownerID, domain.OrderRejected)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *OrderServiceTestSuite) TestVerifyOrder_RejectsPendingTarget() {
	ctx := context.Background()

	_, err := suite.service.VerifyOrder(ctx, uuid.NewString(), suite.ownerID, domain.OrderPending)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrders.AssertNotCalled(suite.T(), "UpdateOrderStatus")
}

func (suite *OrderServiceTestSuite) TestUploadProof_AttachesURL() {
	ctx := context.Background()
	order := &domain.OrderRecord{
		OrderID:        uuid.NewString(),
		ServiceEntryID: suite.entry.EntryID,
		PaymentStatus:  domain.OrderPending,
	}
	data := []byte("receipt-bytes")

	suite.mockOrders.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockServices.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.entry, nil).Once()
	suite.mockBlobs.On("Upload", ctx, "payment-proofs", mock.AnythingOfType("string"), data, "image/jpeg").
		Return("https://bucket.example/payment-proofs/p.jpg", nil).Once()
	suite.mockOrders.On("AttachProof", ctx, order.OrderID, "https://bucket.example/payment-proofs/p.jpg").Return(nil).Once()

	url, err := suite.service.UploadProof(ctx, order.OrderID, suite.ownerID, data, "image/jpeg")

	suite.Require().NoError(err)
	suite.Equal("https://bucket.example/payment-proofs/p.jpg", url)
	suite.mockBlobs.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUploadProof_TerminalOrderRejected() {
	ctx := context.Background()
	order := &domain.OrderRecord{
		OrderID:        uuid.NewString(),
		ServiceEntryID: suite.entry.EntryID,
		PaymentStatus:  domain.OrderRejected,
	}

	suite.mockOrders.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockServices.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.entry, nil).Once()

	_, err := suite.service.UploadProof(ctx, order.OrderID, suite.ownerID, []byte("x"), "image/png")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockBlobs.AssertNotCalled(suite.T(), "Upload")
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

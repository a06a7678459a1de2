package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/core/domain"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/core/services"
	"github.com/synchroai/synchro_backend/internal/dto"
)

// MockServiceRepository is a mock type for the ServiceRepositoryFacade interface
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.ServiceCatalogEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceCatalogEntry), args.Error(1)
}

func (m *MockServiceRepository) ListEntriesByOwner(ctx context.Context, ownerID string) ([]domain.ServiceCatalogEntry, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceCatalogEntry), args.Error(1)
}

func (m *MockServiceRepository) SaveEntry(ctx context.Context, entry domain.ServiceCatalogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockServiceRepository) UpdateEntry(ctx context.Context, entry domain.ServiceCatalogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockServiceRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// MockWalletWriter is a mock type for the WalletWriterSvc interface
type MockWalletWriter struct {
	mock.Mock
}

func (m *MockWalletWriter) Credit(ctx context.Context, userID string, amount decimal.Decimal, description, externalRef string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount, description, externalRef)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletWriter) Debit(ctx context.Context, userID string, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount, description)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockScheduler is a mock type for the ConsultationSchedulerSvc interface
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) ScheduleConsultation(ctx context.Context, entry *domain.ServiceCatalogEntry) string {
	args := m.Called(ctx, entry)
	return args.String(0)
}

// --- Test Suite Setup ---

type CatalogServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockServiceRepository
	mockWallet    *MockWalletWriter
	mockScheduler *MockScheduler
	service       portssvc.CatalogSvcFacade
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockServiceRepository)
	suite.mockWallet = new(MockWalletWriter)
	suite.mockScheduler = new(MockScheduler)
	suite.service = services.NewCatalogService(
		suite.mockRepo,
		suite.mockWallet,
		services.WithConsultationScheduler(suite.mockScheduler),
	)
}

func validFAQRequest() dto.CreateServiceRequest {
	return dto.CreateServiceRequest{
		Type: domain.ServiceFAQBot,
		FAQBot: &domain.FAQBotConfig{
			BusinessName:   "Warung Sari",
			WhatsappNumber: "+6281234567890",
			FAQItems:       []domain.FAQItem{{Question: "Open hours?", Answer: "9-5"}},
		},
	}
}

func validCustomAgentRequest() dto.CreateServiceRequest {
	consult := time.Now().Add(48 * time.Hour)
	return dto.CreateServiceRequest{
		Type: domain.ServiceCustomAgent,
		CustomAgent: &domain.CustomAgentConfig{
			BusinessName:   "Acme Studio",
			Platform:       "whatsapp",
			Requirements:   "Booking assistant",
			Tone:           "friendly",
			ContactEmail:   "owner@acme.example",
			ConsultationAt: &consult,
		},
	}
}

// --- Test Cases ---

func (suite *CatalogServiceTestSuite) TestCreateService_FAQBot() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	req := validFAQRequest()

	suite.mockWallet.On("Debit", ctx, ownerID, decimal.NewFromInt(90), mock.AnythingOfType("string")).
		Return(decimal.NewFromInt(10), nil).Once()
	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.ServiceCatalogEntry) bool {
		return e.UserID == ownerID &&
			e.Type == domain.ServiceFAQBot &&
			e.Status == domain.StatusActive &&
			e.Price.Equal(decimal.NewFromInt(90)) &&
			e.FAQBot != nil && e.OrderBot == nil && e.CustomAgent == nil
	})).Return(nil).Once()

	entry, err := suite.service.CreateService(ctx, ownerID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusActive, entry.Status)
	suite.NotEmpty(entry.EntryID)
	suite.mockWallet.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockScheduler.AssertNotCalled(suite.T(), "ScheduleConsultation")
}

func (suite *CatalogServiceTestSuite) TestCreateService_CustomAgentIsPendingAndScheduled() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	req := validCustomAgentRequest()

	suite.mockWallet.On("Debit", ctx, ownerID, decimal.NewFromInt(199), mock.AnythingOfType("string")).
		Return(decimal.NewFromInt(1), nil).Once()
	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.ServiceCatalogEntry) bool {
		return e.Status == domain.StatusPending && e.Type == domain.ServiceCustomAgent
	})).Return(nil).Once()
	suite.mockScheduler.On("ScheduleConsultation", ctx, mock.AnythingOfType("*domain.ServiceCatalogEntry")).
		Return("https://meet.google.com/abc-defg-hij").Once()
	suite.mockRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.ServiceCatalogEntry")).Return(nil).Once()

	entry, err := suite.service.CreateService(ctx, ownerID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, entry.Status)
	suite.Equal("https://meet.google.com/abc-defg-hij", entry.CustomAgent.MeetingLink)
	suite.mockScheduler.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestCreateService_InsufficientFunds() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	suite.mockWallet.On("Debit", ctx, ownerID, decimal.NewFromInt(90), mock.AnythingOfType("string")).
		Return(decimal.Zero, apperrors.ErrInsufficientFunds).Once()

	_, err := suite.service.CreateService(ctx, ownerID, validFAQRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *CatalogServiceTestSuite) TestCreateService_ConfigTypeMismatch() {
	ctx := context.Background()
	req := validFAQRequest()
	req.Type = domain.ServiceOrderBot // faq config against order-bot type

	_, err := suite.service.CreateService(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWallet.AssertNotCalled(suite.T(), "Debit")
}

func (suite *CatalogServiceTestSuite) TestCreateService_MultipleConfigBlocks() {
	ctx := context.Background()
	req := validFAQRequest()
	req.OrderBot = &domain.OrderBotConfig{}

	_, err := suite.service.CreateService(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestGetService_OwnershipEnforced() {
	ctx := context.Background()
	entry := &domain.ServiceCatalogEntry{
		EntryID: uuid.NewString(),
		UserID:  uuid.NewString(),
		Type:    domain.ServiceFAQBot,
		Status:  domain.StatusActive,
	}

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.GetService(ctx, entry.EntryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CatalogServiceTestSuite) TestUpdateService_TypeIsImmutable() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	entry := &domain.ServiceCatalogEntry{
		EntryID: uuid.NewString(),
		UserID:  ownerID,
		Type:    domain.ServiceFAQBot,
		Status:  domain.StatusActive,
	}

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	newType := domain.ServiceOrderBot
	_, err := suite.service.UpdateService(ctx, entry.EntryID, ownerID, dto.UpdateServiceRequest{Type: &newType})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutableField)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEntry")
}

func (suite *CatalogServiceTestSuite) TestToggleStatus_ActiveToPaused() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	entry := &domain.ServiceCatalogEntry{
		EntryID: uuid.NewString(),
		UserID:  ownerID,
		Type:    domain.ServiceFAQBot,
		Status:  domain.StatusActive,
	}

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.ServiceCatalogEntry) bool {
		return e.Status == domain.StatusPaused
	})).Return(nil).Once()

	updated, err := suite.service.ToggleStatus(ctx, entry.EntryID, ownerID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaused, updated.Status)
}

func (suite *CatalogServiceTestSuite) TestToggleStatus_PendingRejected() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	entry := &domain.ServiceCatalogEntry{
		EntryID: uuid.NewString(),
		UserID:  ownerID,
		Type:    domain.ServiceCustomAgent,
		Status:  domain.StatusPending,
	}

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ToggleStatus(ctx, entry.EntryID, ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEntry")
}

func (suite *CatalogServiceTestSuite) TestDeleteService_OwnerOnly() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	entry := &domain.ServiceCatalogEntry{
		EntryID: uuid.NewString(),
		UserID:  ownerID,
		Type:    domain.ServiceFAQBot,
		Status:  domain.StatusActive,
	}

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Twice()
	suite.mockRepo.On("DeleteEntry", ctx, entry.EntryID).Return(nil).Once()

	suite.Require().Error(suite.service.DeleteService(ctx, entry.EntryID, uuid.NewString()))
	suite.Require().NoError(suite.service.DeleteService(ctx, entry.EntryID, ownerID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

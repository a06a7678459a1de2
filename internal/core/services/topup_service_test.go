package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/core/domain"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/core/services"
)

// decimalEqual matches a decimal argument by value: production computes
// amounts via Div, whose internal exponent differs from NewFromInt's, so a
// literal expectation would fail testify's reflect.DeepEqual comparison.
func decimalEqual(expected int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(expected))
	})
}

// MockCheckoutGateway is a mock type for the CheckoutGateway interface
type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateSession(ctx context.Context, userID string, amount decimal.Decimal, originURL string) (*portssvc.CheckoutSession, error) {
	args := m.Called(ctx, userID, amount, originURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutGateway) GetSession(ctx context.Context, sessionID string) (*portssvc.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutGateway) ParseWebhook(payload []byte, signature string) (*portssvc.CheckoutSession, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CheckoutSession), args.Error(1)
}

// MockWalletSvc is a mock type for the WalletSvcFacade interface
type MockWalletSvc struct {
	mock.Mock
}

func (m *MockWalletSvc) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletSvc) ListLedger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockWalletSvc) FindLedgerEntryByRef(ctx context.Context, userID string, externalRef string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockWalletSvc) Credit(ctx context.Context, userID string, amount decimal.Decimal, description, externalRef string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount, description, externalRef)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletSvc) Debit(ctx context.Context, userID string, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount, description)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---

type TopUpServiceTestSuite struct {
	suite.Suite
	mockGateway *MockCheckoutGateway
	mockWallet  *MockWalletSvc
	service     portssvc.TopUpSvcFacade
}

func (suite *TopUpServiceTestSuite) SetupTest() {
	suite.mockGateway = new(MockCheckoutGateway)
	suite.mockWallet = new(MockWalletSvc)
	suite.service = services.NewTopUpService(suite.mockGateway, suite.mockWallet)
}

// --- Test Cases ---

func (suite *TopUpServiceTestSuite) TestStartTopUp_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	amount := decimal.NewFromInt(50)

	session := &portssvc.CheckoutSession{
		SessionID:   "cs_test_abc",
		RedirectURL: "https://checkout.stripe.com/pay/cs_test_abc",
	}
	suite.mockGateway.On("CreateSession", ctx, userID, amount, "http://localhost:3000").Return(session, nil).Once()

	resp, err := suite.service.StartTopUp(ctx, userID, amount, "http://localhost:3000")

	suite.Require().NoError(err)
	suite.Equal("cs_test_abc", resp.SessionID)
	suite.NotEmpty(resp.RedirectURL)
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *TopUpServiceTestSuite) TestStartTopUp_AmountOutOfRange() {
	ctx := context.Background()
	userID := uuid.NewString()

	for _, amount := range []decimal.Decimal{
		decimal.NewFromInt(4),
		decimal.NewFromInt(1001),
		decimal.Zero,
		decimal.NewFromInt(-10),
	} {
		_, err := suite.service.StartTopUp(ctx, userID, amount, "http://localhost:3000")
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockGateway.AssertNotCalled(suite.T(), "CreateSession")
}

func (suite *TopUpServiceTestSuite) TestStartTopUp_Boundaries() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &portssvc.CheckoutSession{SessionID: "cs_ok", RedirectURL: "https://example.com"}

	for _, amount := range []decimal.Decimal{decimal.NewFromInt(5), decimal.NewFromInt(1000)} {
		suite.mockGateway.On("CreateSession", ctx, userID, amount, "http://localhost:3000").Return(session, nil).Once()
		_, err := suite.service.StartTopUp(ctx, userID, amount, "http://localhost:3000")
		suite.Require().NoError(err)
	}
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *TopUpServiceTestSuite) TestConfirmTopUp_CreditsOnce() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &portssvc.CheckoutSession{
		SessionID:   "cs_paid",
		UserID:      userID,
		AmountCents: 5000,
		Paid:        true,
	}

	suite.mockGateway.On("GetSession", ctx, "cs_paid").Return(session, nil).Once()
	suite.mockWallet.On("Credit", ctx, userID, decimalEqual(50), "Wallet top-up", "cs_paid").
		Return(decimal.NewFromInt(50), nil).Once()

	balance, err := suite.service.ConfirmTopUp(ctx, userID, "cs_paid")

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(50)))
	suite.mockWallet.AssertExpectations(suite.T())
}

func (suite *TopUpServiceTestSuite) TestConfirmTopUp_RepeatedIsIdempotent() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &portssvc.CheckoutSession{
		SessionID:   "cs_paid",
		UserID:      userID,
		AmountCents: 5000,
		Paid:        true,
	}

	suite.mockGateway.On("GetSession", ctx, "cs_paid").Return(session, nil).Once()
	suite.mockWallet.On("Credit", ctx, userID, decimalEqual(50), "Wallet top-up", "cs_paid").
		Return(decimal.Zero, apperrors.ErrDuplicate).Once()
	suite.mockWallet.On("FindLedgerEntryByRef", ctx, userID, "cs_paid").
		Return(&domain.LedgerEntry{
			UserID:      userID,
			Direction:   domain.Credit,
			Amount:      decimal.NewFromInt(50),
			ExternalRef: "cs_paid",
		}, nil).Once()
	suite.mockWallet.On("GetBalance", ctx, userID).Return(decimal.NewFromInt(50), nil).Once()

	balance, err := suite.service.ConfirmTopUp(ctx, userID, "cs_paid")

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(50)))
	suite.mockWallet.AssertExpectations(suite.T())
}

func (suite *TopUpServiceTestSuite) TestConfirmTopUp_DuplicateWithMissingEntryStillReturnsBalance() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &portssvc.CheckoutSession{
		SessionID:   "cs_paid",
		UserID:      userID,
		AmountCents: 5000,
		Paid:        true,
	}

	suite.mockGateway.On("GetSession", ctx, "cs_paid").Return(session, nil).Once()
	suite.mockWallet.On("Credit", ctx, userID, decimalEqual(50), "Wallet top-up", "cs_paid").
		Return(decimal.Zero, apperrors.ErrDuplicate).Once()
	suite.mockWallet.On("FindLedgerEntryByRef", ctx, userID, "cs_paid").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWallet.On("GetBalance", ctx, userID).Return(decimal.NewFromInt(50), nil).Once()

	balance, err := suite.service.ConfirmTopUp(ctx, userID, "cs_paid")

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(50)))
	suite.mockWallet.AssertExpectations(suite.T())
}

func (suite *TopUpServiceTestSuite) TestConfirmTopUp_NotPaid() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &portssvc.CheckoutSession{SessionID: "cs_open", UserID: userID, Paid: false}

	suite.mockGateway.On("GetSession", ctx, "cs_open").Return(session, nil).Once()

	_, err := suite.service.ConfirmTopUp(ctx, userID, "cs_open")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPaymentNotCompleted)
	suite.mockWallet.AssertNotCalled(suite.T(), "Credit")
}

func (suite *TopUpServiceTestSuite) TestConfirmTopUp_WrongUser() {
	ctx := context.Background()
	session := &portssvc.CheckoutSession{SessionID: "cs_x", UserID: uuid.NewString(), Paid: true}

	suite.mockGateway.On("GetSession", ctx, "cs_x").Return(session, nil).Once()

	_, err := suite.service.ConfirmTopUp(ctx, uuid.NewString(), "cs_x")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TopUpServiceTestSuite) TestHandleWebhook_CompletedSessionCredits() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &portssvc.CheckoutSession{
		SessionID:   "cs_hook",
		UserID:      userID,
		AmountCents: 2500,
		Paid:        true,
	}

	suite.mockGateway.On("ParseWebhook", []byte(`{}`), "sig").Return(session, nil).Once()
	suite.mockWallet.On("Credit", ctx, userID, decimalEqual(25), "Wallet top-up", "cs_hook").
		Return(decimal.NewFromInt(25), nil).Once()

	err := suite.service.HandleWebhook(ctx, []byte(`{}`), "sig")

	suite.Require().NoError(err)
	suite.mockWallet.AssertExpectations(suite.T())
}

func (suite *TopUpServiceTestSuite) TestHandleWebhook_IgnoredEventType() {
	ctx := context.Background()

	suite.mockGateway.On("ParseWebhook", []byte(`{}`), "sig").Return(nil, nil).Once()

	err := suite.service.HandleWebhook(ctx, []byte(`{}`), "sig")

	suite.Require().NoError(err)
	suite.mockWallet.AssertNotCalled(suite.T(), "Credit")
}

func TestTopUpServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TopUpServiceTestSuite))
}

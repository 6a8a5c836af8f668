package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vicdotun/payvault/internal/apperrors"
	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/core/ports/gateways"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/internal/core/services"
	"github.com/vicdotun/payvault/internal/dto"
)

// Ensure mocks implement the interfaces they stand in for.
var (
	_ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)
	_ portsrepo.UserReader                  = (*MockUserReader)(nil)
	_ portsrepo.PaymentMethodReader         = (*MockPaymentMethodReader)(nil)
	_ portsrepo.BankAccountReader           = (*MockBankAccountReader)(nil)
	_ portsrepo.CurrencyReader              = (*MockCurrencyReader)(nil)
	_ gateways.PaymentGateway               = (*MockPaymentGateway)(nil)
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkTransactionFailed(ctx context.Context, transactionID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, transactionID, updatedBy, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) SettleTransaction(ctx context.Context, transactionID string, gatewayReference string, updatedBy string, now time.Time) (*domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, transactionID, gatewayReference, updatedBy, now)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(decimal.Decimal), args.Error(2)
}

// --- Mock UserReader ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock PaymentMethodReader ---
type MockPaymentMethodReader struct {
	mock.Mock
}

func (m *MockPaymentMethodReader) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodReader) ListPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

// --- Mock BankAccountReader ---
type MockBankAccountReader struct {
	mock.Mock
}

func (m *MockBankAccountReader) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountReader) ListBankAccountsByUser(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

// --- Mock CurrencyReader ---
type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock PaymentGateway ---
type MockPaymentGateway struct {
	mock.Mock
	name domain.GatewayName
}

func (m *MockPaymentGateway) Name() domain.GatewayName {
	return m.name
}

func (m *MockPaymentGateway) Initiate(ctx context.Context, req gateways.InitiateRequest) (*gateways.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.Result), args.Error(1)
}

func (m *MockPaymentGateway) Verify(ctx context.Context, req gateways.VerifyRequest) (*gateways.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.Result), args.Error(1)
}

func (m *MockPaymentGateway) Payout(ctx context.Context, req gateways.PayoutRequest) (*gateways.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.Result), args.Error(1)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockUserReader  *MockUserReader
	mockPMReader    *MockPaymentMethodReader
	mockBAReader    *MockBankAccountReader
	mockCurReader   *MockCurrencyReader
	mockGateway     *MockPaymentGateway
	service         portssvc.TransactionSvcFacade
	userID          string
	paymentMethodID string
	user            *domain.User
	paymentMethod   *domain.PaymentMethod
	currency        *domain.Currency
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockUserReader = new(MockUserReader)
	suite.mockPMReader = new(MockPaymentMethodReader)
	suite.mockBAReader = new(MockBankAccountReader)
	suite.mockCurReader = new(MockCurrencyReader)
	suite.mockGateway = &MockPaymentGateway{name: domain.GatewayPaystack}

	refGen := services.NewReferenceGenerator("txn", suite.mockTxnRepo)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockUserReader,
		suite.mockPMReader,
		suite.mockBAReader,
		suite.mockCurReader,
		map[domain.GatewayName]gateways.PaymentGateway{
			domain.GatewayPaystack: suite.mockGateway,
		},
		refGen,
		"NGN",
		"http://localhost:8080",
	)

	suite.userID = uuid.NewString()
	suite.paymentMethodID = uuid.NewString()

	suite.user = &domain.User{
		UserID:  suite.userID,
		Name:    "Ada",
		Email:   "ada@example.com",
		Balance: decimal.NewFromInt(500),
	}
	suite.paymentMethod = &domain.PaymentMethod{
		PaymentMethodID: suite.paymentMethodID,
		UserID:          suite.userID,
		Type:            domain.GatewayPaystack,
		IsActive:        true,
	}
	suite.currency = &domain.Currency{CurrencyCode: "NGN", Name: "Nigerian Naira", Symbol: "₦"}
}

// --- InitiateDeposit ---

func (suite *TransactionServiceTestSuite) TestInitiateDeposit_Success() {
	ctx := context.Background()
	req := dto.InitiateDepositRequest{
		Amount:          decimal.NewFromInt(1000),
		PaymentMethodID: suite.paymentMethodID,
	}

	suite.mockUserReader.On("FindUserByID", ctx, suite.userID).Return(suite.user, nil)
	suite.mockPMReader.On("FindPaymentMethodByID", ctx, suite.paymentMethodID).Return(suite.paymentMethod, nil)
	suite.mockCurReader.On("FindCurrencyByCode", ctx, "NGN").Return(suite.currency, nil)
	suite.mockTxnRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockGateway.On("Initiate", ctx, mock.MatchedBy(func(r gateways.InitiateRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(1000)) && r.Email == "ada@example.com" && r.Reference != ""
	})).Return(&gateways.Result{
		Success:   true,
		Reference: "PSK_12345",
		Payload:   map[string]interface{}{"authorization_url": "https://checkout.paystack.com/abc"},
	}, nil)
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Status == domain.Pending &&
			t.Type == domain.Deposit &&
			t.GatewayReference == "PSK_12345" &&
			t.UserID == suite.userID
	})).Return(nil)

	resp, err := suite.service.InitiateDeposit(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(resp.TransactionID)
	suite.Regexp(`^txn_[A-Za-z0-9]{10}$`, resp.Reference)
	suite.Equal("https://checkout.paystack.com/abc", resp.GatewayPayload["authorization_url"])
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestInitiateDeposit_GatewayDecline_PersistsNothing() {
	ctx := context.Background()
	req := dto.InitiateDepositRequest{
		Amount:          decimal.NewFromInt(1000),
		PaymentMethodID: suite.paymentMethodID,
	}

	suite.mockUserReader.On("FindUserByID", ctx, suite.userID).Return(suite.user, nil)
	suite.mockPMReader.On("FindPaymentMethodByID", ctx, suite.paymentMethodID).Return(suite.paymentMethod, nil)
	suite.mockCurReader.On("FindCurrencyByCode", ctx, "NGN").Return(suite.currency, nil)
	suite.mockTxnRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockGateway.On("Initiate", ctx, mock.Anything).Return(&gateways.Result{
		Success: false,
		Message: "merchant not allowed",
	}, nil)

	_, err := suite.service.InitiateDeposit(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrGatewayInitiation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestInitiateDeposit_GatewayFault_PersistsNothing() {
	ctx := context.Background()
	req := dto.InitiateDepositRequest{
		Amount:          decimal.NewFromInt(1000),
		PaymentMethodID: suite.paymentMethodID,
	}

	suite.mockUserReader.On("FindUserByID", ctx, suite.userID).Return(suite.user, nil)
	suite.mockPMReader.On("FindPaymentMethodByID", ctx, suite.paymentMethodID).Return(suite.paymentMethod, nil)
	suite.mockCurReader.On("FindCurrencyByCode", ctx, "NGN").Return(suite.currency, nil)
	suite.mockTxnRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockGateway.On("Initiate", ctx, mock.Anything).Return(nil, errors.New("connection timeout"))

	_, err := suite.service.InitiateDeposit(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrGatewayInitiation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestInitiateDeposit_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.InitiateDepositRequest{
		Amount:          decimal.Zero,
		PaymentMethodID: suite.paymentMethodID,
	}

	_, err := suite.service.InitiateDeposit(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestInitiateDeposit_InactivePaymentMethod() {
	ctx := context.Background()
	inactive := *suite.paymentMethod
	inactive.IsActive = false

	suite.mockUserReader.On("FindUserByID", ctx, suite.userID).Return(suite.user, nil)
	suite.mockPMReader.On("FindPaymentMethodByID", ctx, suite.paymentMethodID).Return(&inactive, nil)

	_, err := suite.service.InitiateDeposit(ctx, suite.userID, dto.InitiateDepositRequest{
		Amount:          decimal.NewFromInt(100),
		PaymentMethodID: suite.paymentMethodID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInactivePaymentMethod)
}

func (suite *TransactionServiceTestSuite) TestInitiateDeposit_ForeignPaymentMethod_ReadsAsNotFound() {
	ctx := context.Background()
	foreign := *suite.paymentMethod
	foreign.UserID = uuid.NewString()

	suite.mockUserReader.On("FindUserByID", ctx, suite.userID).Return(suite.user, nil)
	suite.mockPMReader.On("FindPaymentMethodByID", ctx, suite.paymentMethodID).Return(&foreign, nil)

	_, err := suite.service.InitiateDeposit(ctx, suite.userID, dto.InitiateDepositRequest{
		Amount:          decimal.NewFromInt(100),
		PaymentMethodID: suite.paymentMethodID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- VerifyDeposit ---

func (suite *TransactionServiceTestSuite) pendingDeposit() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:    uuid.NewString(),
		Reference:        "txn_AbCdEf1234",
		UserID:           suite.userID,
		Type:             domain.Deposit,
		Amount:           decimal.NewFromInt(1000),
		CurrencyCode:     "NGN",
		Status:           domain.Pending,
		Gateway:          domain.GatewayPaystack,
		GatewayReference: "PSK_12345",
	}
}

func (suite *TransactionServiceTestSuite) TestVerifyDeposit_Success_SettlesOnce() {
	ctx := context.Background()
	txn := suite.pendingDeposit()

	start := decimal.NewFromInt(500)
	end := decimal.NewFromInt(1500)
	settled := *txn
	settled.Status = domain.Completed
	settled.StartBalance = &start
	settled.EndBalance = &end

	suite.mockTxnRepo.On("FindTransactionByReference", ctx, txn.Reference).Return(txn, nil)
	suite.mockGateway.On("Verify", ctx, gateways.VerifyRequest{
		Reference:         txn.Reference,
		ProviderReference: "PSK_12345",
	}).Return(&gateways.Result{Success: true, Reference: "PSK_12345", Status: "success"}, nil)
	suite.mockTxnRepo.On("SettleTransaction", ctx, txn.TransactionID, "PSK_12345", txn.UserID, mock.AnythingOfType("time.Time")).
		Return(&settled, end, nil)

	resp, err := suite.service.VerifyDeposit(ctx, txn.Reference)

	suite.Require().NoError(err)
	suite.Equal(txn.TransactionID, resp.TransactionID)
	suite.True(resp.NewBalance.Equal(decimal.NewFromInt(1500)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestVerifyDeposit_AlreadyCompleted_Conflict() {
	ctx := context.Background()
	txn := suite.pendingDeposit()
	txn.Status = domain.Completed

	suite.mockTxnRepo.On("FindTransactionByReference", ctx, txn.Reference).Return(txn, nil)

	_, err := suite.service.VerifyDeposit(ctx, txn.Reference)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SettleTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestVerifyDeposit_GatewayReportsFailure_MarksFailed() {
	ctx := context.Background()
	txn := suite.pendingDeposit()

	suite.mockTxnRepo.On("FindTransactionByReference", ctx, txn.Reference).Return(txn, nil)
	suite.mockGateway.On("Verify", ctx, mock.Anything).Return(&gateways.Result{Success: false, Status: "abandoned"}, nil)
	suite.mockTxnRepo.On("MarkTransactionFailed", ctx, txn.TransactionID, txn.UserID, mock.AnythingOfType("time.Time")).Return(nil)

	_, err := suite.service.VerifyDeposit(ctx, txn.Reference)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrVerificationFailed)
	suite.mockTxnRepo.AssertCalled(suite.T(), "MarkTransactionFailed", ctx, txn.TransactionID, txn.UserID, mock.AnythingOfType("time.Time"))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SettleTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestVerifyDeposit_TransportFault_MarksFailed() {
	ctx := context.Background()
	txn := suite.pendingDeposit()

	suite.mockTxnRepo.On("FindTransactionByReference", ctx, txn.Reference).Return(txn, nil)
	suite.mockGateway.On("Verify", ctx, mock.Anything).Return(nil, errors.New("timeout"))
	suite.mockTxnRepo.On("MarkTransactionFailed", ctx, txn.TransactionID, txn.UserID, mock.AnythingOfType("time.Time")).Return(nil)

	_, err := suite.service.VerifyDeposit(ctx, txn.Reference)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrVerificationFailed)
	suite.mockTxnRepo.AssertCalled(suite.T(), "MarkTransactionFailed", ctx, txn.TransactionID, txn.UserID, mock.AnythingOfType("time.Time"))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SettleTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestVerifyDeposit_TransportFault_AfterConcurrentSettle_Conflict() {
	ctx := context.Background()
	txn := suite.pendingDeposit()

	suite.mockTxnRepo.On("FindTransactionByReference", ctx, txn.Reference).Return(txn, nil)
	suite.mockGateway.On("Verify", ctx, mock.Anything).Return(nil, errors.New("timeout"))
	suite.mockTxnRepo.On("MarkTransactionFailed", ctx, txn.TransactionID, txn.UserID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict)

	_, err := suite.service.VerifyDeposit(ctx, txn.Reference)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrAlreadySettled)
}

func (suite *TransactionServiceTestSuite) TestVerifyDeposit_LostStatusRace_Conflict() {
	ctx := context.Background()
	txn := suite.pendingDeposit()

	suite.mockTxnRepo.On("FindTransactionByReference", ctx, txn.Reference).Return(txn, nil)
	suite.mockGateway.On("Verify", ctx, mock.Anything).Return(&gateways.Result{Success: true, Reference: "PSK_12345"}, nil)
	suite.mockTxnRepo.On("SettleTransaction", ctx, txn.TransactionID, "PSK_12345", txn.UserID, mock.AnythingOfType("time.Time")).
		Return(nil, decimal.Zero, apperrors.ErrConflict)

	_, err := suite.service.VerifyDeposit(ctx, txn.Reference)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- InitiateWithdrawal ---

func (suite *TransactionServiceTestSuite) TestInitiateWithdrawal_Success() {
	ctx := context.Background()
	req := dto.InitiateWithdrawalRequest{
		Amount:          decimal.NewFromInt(200),
		PaymentMethodID: suite.paymentMethodID,
		Destination: dto.PayoutDestination{
			AccountNumber: "0123456789",
			BankCode:      "058",
			AccountName:   "Ada",
		},
	}

	end := decimal.NewFromInt(300)

	suite.mockUserReader.On("FindUserByID", ctx, suite.userID).Return(suite.user, nil)
	suite.mockPMReader.On("FindPaymentMethodByID", ctx, suite.paymentMethodID).Return(suite.paymentMethod, nil)
	suite.mockCurReader.On("FindCurrencyByCode", ctx, "NGN").Return(suite.currency, nil)
	suite.mockTxnRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil)

	var createdID string
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		createdID = t.TransactionID
		return t.Status == domain.Pending &&
			t.Type == domain.Withdrawal &&
			t.StartBalance != nil && t.StartBalance.Equal(decimal.NewFromInt(500))
	})).Return(nil)
	suite.mockGateway.On("Payout", ctx, mock.MatchedBy(func(r gateways.PayoutRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(200)) && r.Destination.AccountNumber == "0123456789"
	})).Return(&gateways.Result{Success: true, Reference: "TRF_999"}, nil)
	suite.mockTxnRepo.On("SettleTransaction", ctx, mock.AnythingOfType("string"), "TRF_999", suite.userID, mock.AnythingOfType("time.Time")).
		Return(&domain.Transaction{TransactionID: "placeholder", Reference: "txn_ZzZzZz0000", Status: domain.Completed}, end, nil)

	resp, err := suite.service.InitiateWithdrawal(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(resp.NewBalance.Equal(decimal.NewFromInt(300)))
	suite.NotEmpty(createdID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestInitiateWithdrawal_InsufficientBalance_PersistsNothing() {
	ctx := context.Background()
	req := dto.InitiateWithdrawalRequest{
		Amount:          decimal.NewFromInt(10000),
		PaymentMethodID: suite.paymentMethodID,
		Destination:     dto.PayoutDestination{AccountNumber: "0123456789", BankCode: "058"},
	}

	suite.mockUserReader.On("FindUserByID", ctx, suite.userID).Return(suite.user, nil)

	_, err := suite.service.InitiateWithdrawal(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientBalance)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestInitiateWithdrawal_PayoutDecline_MarksFailed() {
	ctx := context.Background()
	req := dto.InitiateWithdrawalRequest{
		Amount:          decimal.NewFromInt(200),
		PaymentMethodID: suite.paymentMethodID,
		Destination:     dto.PayoutDestination{AccountNumber: "0123456789", BankCode: "058"},
	}

	suite.mockUserReader.On("FindUserByID", ctx, suite.userID).Return(suite.user, nil)
	suite.mockPMReader.On("FindPaymentMethodByID", ctx, suite.paymentMethodID).Return(suite.paymentMethod, nil)
	suite.mockCurReader.On("FindCurrencyByCode", ctx, "NGN").Return(suite.currency, nil)
	suite.mockTxnRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.Anything).Return(nil)
	suite.mockGateway.On("Payout", ctx, mock.Anything).Return(&gateways.Result{Success: false, Message: "insufficient merchant balance"}, nil)
	suite.mockTxnRepo.On("MarkTransactionFailed", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil)

	_, err := suite.service.InitiateWithdrawal(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrGatewayPayout)
	suite.mockTxnRepo.AssertCalled(suite.T(), "MarkTransactionFailed", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time"))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SettleTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestInitiateWithdrawal_PayoutFault_MarksFailed() {
	ctx := context.Background()
	req := dto.InitiateWithdrawalRequest{
		Amount:          decimal.NewFromInt(200),
		PaymentMethodID: suite.paymentMethodID,
		Destination:     dto.PayoutDestination{AccountNumber: "0123456789", BankCode: "058"},
	}

	suite.mockUserReader.On("FindUserByID", ctx, suite.userID).Return(suite.user, nil)
	suite.mockPMReader.On("FindPaymentMethodByID", ctx, suite.paymentMethodID).Return(suite.paymentMethod, nil)
	suite.mockCurReader.On("FindCurrencyByCode", ctx, "NGN").Return(suite.currency, nil)
	suite.mockTxnRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.Anything).Return(nil)
	suite.mockGateway.On("Payout", ctx, mock.Anything).Return(nil, errors.New("connection timeout"))
	suite.mockTxnRepo.On("MarkTransactionFailed", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil)

	_, err := suite.service.InitiateWithdrawal(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrGatewayPayout)
	suite.mockTxnRepo.AssertCalled(suite.T(), "MarkTransactionFailed", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time"))
}

// --- ListTransactions ---

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsLimit() {
	ctx := context.Background()
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), Reference: "txn_aaaaaaaaaa", Type: domain.Deposit, Status: domain.Completed, Amount: decimal.NewFromInt(100)},
	}

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, 20, (*string)(nil)).Return(txns, nil, nil)

	resp, err := suite.service.ListTransactions(ctx, suite.userID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Nil(resp.NextToken)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_CapsLimit() {
	ctx := context.Background()

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, 100, (*string)(nil)).Return([]domain.Transaction{}, nil, nil)

	_, err := suite.service.ListTransactions(ctx, suite.userID, dto.ListTransactionsParams{Limit: 5000})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func TestVerifyDeposit_NotFound(t *testing.T) {
	mockTxnRepo := new(MockTransactionRepository)
	refGen := services.NewReferenceGenerator("txn", mockTxnRepo)
	svc := services.NewTransactionService(mockTxnRepo, new(MockUserReader), new(MockPaymentMethodReader), new(MockBankAccountReader), new(MockCurrencyReader), nil, refGen, "NGN", "http://localhost:8080")

	mockTxnRepo.On("FindTransactionByReference", mock.Anything, "txn_missing123").Return(nil, apperrors.ErrNotFound)

	_, err := svc.VerifyDeposit(context.Background(), "txn_missing123")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

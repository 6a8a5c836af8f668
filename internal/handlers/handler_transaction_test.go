package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vicdotun/payvault/internal/apperrors"
	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/internal/core/services"
	"github.com/vicdotun/payvault/internal/dto"
	"github.com/vicdotun/payvault/internal/handlers"
	"github.com/vicdotun/payvault/internal/middleware"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) InitiateDeposit(ctx context.Context, userID string, req dto.InitiateDepositRequest) (*dto.InitiateDepositResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InitiateDepositResponse), args.Error(1)
}

func (m *MockTransactionService) VerifyDeposit(ctx context.Context, reference string) (*dto.SettlementResponse, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettlementResponse), args.Error(1)
}

func (m *MockTransactionService) InitiateWithdrawal(ctx context.Context, userID string, req dto.InitiateWithdrawalRequest) (*dto.SettlementResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettlementResponse), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockTransactionService
	jwtSecret string
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "payvault-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSvc = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockSvc, nil)
}

func (suite *TransactionHandlerTestSuite) authedRequest(method, url string, body interface{}, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestInitiateDeposit_Success() {
	userID := uuid.NewString()
	paymentMethodID := uuid.NewString()
	expected := &dto.InitiateDepositResponse{
		TransactionID: uuid.NewString(),
		Reference:     "txn_A1b2C3d4E5",
		GatewayPayload: map[string]interface{}{
			"authorization_url": "https://checkout.paystack.com/abc",
		},
	}

	suite.mockSvc.On("InitiateDeposit", mock.Anything, userID, mock.MatchedBy(func(r dto.InitiateDepositRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(1000)) && r.PaymentMethodID == paymentMethodID
	})).Return(expected, nil).Once()

	body := map[string]interface{}{
		"amount":          1000,
		"paymentMethodID": paymentMethodID,
	}
	w := suite.authedRequest(http.MethodPost, "/api/v1/transactions/deposit", body, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.InitiateDepositResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.Reference, resp.Reference)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestInitiateDeposit_GatewayDecline_Returns400() {
	userID := uuid.NewString()

	suite.mockSvc.On("InitiateDeposit", mock.Anything, userID, mock.Anything).
		Return(nil, services.ErrGatewayInitiation).Once()

	body := map[string]interface{}{
		"amount":          1000,
		"paymentMethodID": uuid.NewString(),
	}
	w := suite.authedRequest(http.MethodPost, "/api/v1/transactions/deposit", body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestInitiateDeposit_MissingToken_Returns401() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions/deposit", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "InitiateDeposit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestVerifyDeposit_Success() {
	userID := uuid.NewString()
	expected := &dto.SettlementResponse{
		TransactionID: uuid.NewString(),
		Reference:     "txn_A1b2C3d4E5",
		NewBalance:    decimal.NewFromInt(1500),
	}

	suite.mockSvc.On("VerifyDeposit", mock.Anything, "txn_A1b2C3d4E5").Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transactions/verify/txn_A1b2C3d4E5", nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.SettlementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.NewBalance.Equal(decimal.NewFromInt(1500)))
}

func (suite *TransactionHandlerTestSuite) TestVerifyDeposit_AlreadySettled_Returns400() {
	userID := uuid.NewString()

	suite.mockSvc.On("VerifyDeposit", mock.Anything, "txn_A1b2C3d4E5").
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transactions/verify/txn_A1b2C3d4E5", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestVerifyDeposit_GatewayFailure_Returns400() {
	userID := uuid.NewString()

	suite.mockSvc.On("VerifyDeposit", mock.Anything, "txn_A1b2C3d4E5").
		Return(nil, services.ErrVerificationFailed).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transactions/verify/txn_A1b2C3d4E5", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestVerifyDeposit_UnknownReference_Returns404() {
	userID := uuid.NewString()

	suite.mockSvc.On("VerifyDeposit", mock.Anything, "txn_missing123").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transactions/verify/txn_missing123", nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestInitiateWithdrawal_InsufficientBalance_Returns400() {
	userID := uuid.NewString()

	suite.mockSvc.On("InitiateWithdrawal", mock.Anything, userID, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	body := map[string]interface{}{
		"amount":          10000,
		"paymentMethodID": uuid.NewString(),
		"destination":     map[string]string{"accountNumber": "0123456789", "bankCode": "058"},
	}
	w := suite.authedRequest(http.MethodPost, "/api/v1/transactions/withdraw", body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), Reference: "txn_aaaaaaaaaa", Amount: decimal.NewFromInt(100)},
		},
	}

	suite.mockSvc.On("ListTransactions", mock.Anything, userID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 10
	})).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transactions?limit=10", nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.mockSvc.AssertExpectations(suite.T())
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vicdotun/payvault/internal/apperrors"
	"github.com/vicdotun/payvault/internal/core/domain"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/internal/core/services"
	"github.com/vicdotun/payvault/internal/dto"
)

type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
	userID   string
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_UppercasesCode() {
	ctx := context.Background()

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "NGN" && c.CreatedBy == suite.userID
	})).Return(nil)

	currency, err := suite.service.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		CurrencyCode: "ngn",
		Name:         "Nigerian Naira",
		Symbol:       "₦",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("NGN", currency.CurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_RejectsBadCode() {
	ctx := context.Background()

	_, err := suite.service.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		CurrencyCode: "NAIRA",
		Name:         "Nigerian Naira",
		Symbol:       "₦",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_UppercasesLookup() {
	ctx := context.Background()
	expected := &domain.Currency{CurrencyCode: "USD", Name: "US Dollar", Symbol: "$"}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(expected, nil)

	currency, err := suite.service.GetCurrencyByCode(ctx, "usd")

	suite.Require().NoError(err)
	suite.Equal("USD", currency.CurrencyCode)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}

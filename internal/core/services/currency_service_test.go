package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/core/services"
	"github.com/spliteasy/spliteasy/internal/dto"
	"github.com/spliteasy/spliteasy/internal/platform/cache"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
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

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo, cache.New[domain.Currency](16, time.Minute))
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "TST",
		Symbol:       "T",
		Name:         "Test Currency",
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == req.CurrencyCode && c.Symbol == req.Symbol && c.Name == req.Name && c.CreatedBy == creatorUserID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.Equal(req.CurrencyCode, currency.CurrencyCode)
	suite.Equal(int32(2), currency.Precision, "precision defaults to 2")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_ExplicitPrecision() {
	ctx := context.Background()
	precision := int32(0)
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "JPY",
		Symbol:       "¥",
		Name:         "Japanese Yen",
		Precision:    &precision,
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(int32(0), currency.Precision)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_SaveError() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "ERR", Symbol: "E", Name: "Error Currency"}
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(expectedErr).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_Success() {
	ctx := context.Background()
	code := "TST"
	expected := &domain.Currency{CurrencyCode: code, Precision: 2}

	suite.mockRepo.On("FindCurrencyByCode", ctx, code).Return(expected, nil).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, code)

	suite.Require().NoError(err)
	suite.Equal(expected.CurrencyCode, currency.CurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_ServedFromCache() {
	ctx := context.Background()
	code := "USD"
	expected := &domain.Currency{CurrencyCode: code, Precision: 2}

	// One repository hit serves both calls.
	suite.mockRepo.On("FindCurrencyByCode", ctx, code).Return(expected, nil).Once()

	_, err := suite.service.GetCurrencyByCode(ctx, code)
	suite.Require().NoError(err)

	currency, err := suite.service.GetCurrencyByCode(ctx, code)
	suite.Require().NoError(err)
	suite.Equal(code, currency.CurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCurrencyByCode", ctx, "NTF").Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "NTF")

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListCurrencies", ctx).Return(nil, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx)

	suite.Require().NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/core/services"
	"github.com/spliteasy/spliteasy/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, afterDate *time.Time, afterCreated *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, limit, afterDate, afterCreated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockAccountRepository) SumTransactionsByCategory(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, category, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, newBalance decimal.Decimal) error {
	args := m.Called(ctx, txn, newBalance)
	return args.Error(0)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

// --- Test Suite ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockBudgetRepository
	mockAccountRepo *MockAccountRepository
	mockExpenseRepo *MockExpenseRepository
	service         portssvc.BudgetSvcFacade

	userID string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBudgetRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.service = services.NewBudgetService(suite.mockRepo, suite.mockAccountRepo, suite.mockExpenseRepo)

	suite.userID = uuid.NewString()
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_ParsesMonth() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:     "groceries",
		CurrencyCode: "USD",
		Month:        "2026-08",
		LimitAmount:  decimal.RequireFromString("400.00"),
	}

	suite.mockRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.Month.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) && b.UserID == suite.userID
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_BadMonthRejected() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:     "groceries",
		CurrencyCode: "USD",
		Month:        "August 2026",
		LimitAmount:  decimal.RequireFromString("400.00"),
	}

	budget, err := suite.service.CreateBudget(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBudget")
}

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_SumsBothSpendSources() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	month := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := month.AddDate(0, 1, 0)

	budget := &domain.Budget{
		BudgetID:    budgetID,
		UserID:      suite.userID,
		Category:    "dining",
		Month:       month,
		LimitAmount: decimal.RequireFromString("200.00"),
	}

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).Return(budget, nil).Once()
	suite.mockAccountRepo.On("SumTransactionsByCategory", ctx, suite.userID, "dining", month, monthEnd).
		Return(decimal.RequireFromString("120.00"), nil).Once()
	suite.mockExpenseRepo.On("SumUserSharesByCategory", ctx, suite.userID, "dining", month, monthEnd).
		Return(decimal.RequireFromString("95.50"), nil).Once()

	status, err := suite.service.GetBudgetStatus(ctx, budgetID, suite.userID)

	suite.Require().NoError(err)
	suite.True(status.Spent.Equal(decimal.RequireFromString("215.50")))
	suite.True(status.Remaining.Equal(decimal.RequireFromString("-15.50")))
	suite.True(status.IsOver)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_OtherUserForbidden() {
	ctx := context.Background()
	budgetID := uuid.NewString()

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).
		Return(&domain.Budget{BudgetID: budgetID, UserID: uuid.NewString()}, nil).Once()

	status, err := suite.service.GetBudgetStatus(ctx, budgetID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(status)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_NonPositiveLimitRejected() {
	ctx := context.Background()
	budgetID := uuid.NewString()

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).
		Return(&domain.Budget{BudgetID: budgetID, UserID: suite.userID}, nil).Once()

	zero := decimal.Zero
	budget, err := suite.service.UpdateBudget(ctx, budgetID, dto.UpdateBudgetRequest{LimitAmount: &zero}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBudget")
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}

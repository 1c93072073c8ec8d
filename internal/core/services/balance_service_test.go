package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/core/services"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo    *MockExpenseRepository
	mockSettlementRepo *MockSettlementRepository
	mockGroupRepo      *MockGroupRepository
	service            portssvc.BalanceSvcFacade

	userID  string
	otherID string
	groupID string
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.service = services.NewBalanceService(suite.mockExpenseRepo, suite.mockSettlementRepo, suite.mockGroupRepo)

	suite.userID = uuid.NewString()
	suite.otherID = uuid.NewString()
	suite.groupID = uuid.NewString()
}

func (suite *BalanceServiceTestSuite) TestGetUserBalance_PayerPosition() {
	ctx := context.Background()

	// The user fronted 60.00 and owns a 30.00 share of it.
	expenses := []domain.SharedExpense{{
		ExpenseID: uuid.NewString(),
		GroupID:   suite.groupID,
		PaidBy:    suite.userID,
		Amount:    decimal.RequireFromString("60.00"),
		Splits: []domain.ExpenseSplit{
			{ParticipantID: suite.userID, Amount: decimal.RequireFromString("30.00")},
			{ParticipantID: suite.otherID, Amount: decimal.RequireFromString("30.00")},
		},
	}}

	suite.mockExpenseRepo.On("ListExpensesByUser", ctx, suite.userID).Return(expenses, nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByUser", ctx, suite.userID).Return(nil, nil).Once()
	suite.mockGroupRepo.On("ListGroupsByUser", ctx, suite.userID).
		Return([]domain.Group{{GroupID: suite.groupID, Name: "Flatmates"}}, nil).Once()

	result, err := suite.service.GetUserBalance(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.TotalPaid.Equal(decimal.RequireFromString("60.00")))
	suite.True(result.TotalOwed.Equal(decimal.RequireFromString("30.00")))
	suite.True(result.NetBalance.Equal(decimal.RequireFromString("30.00")))
	suite.Require().Len(result.Groups, 1)
	suite.Equal("Flatmates", result.Groups[0].GroupName)
}

func (suite *BalanceServiceTestSuite) TestGetUserBalance_SettlementReducesOwed() {
	ctx := context.Background()

	expenses := []domain.SharedExpense{{
		ExpenseID: uuid.NewString(),
		GroupID:   suite.groupID,
		PaidBy:    suite.otherID,
		Amount:    decimal.RequireFromString("40.00"),
		Splits: []domain.ExpenseSplit{
			{ParticipantID: suite.userID, Amount: decimal.RequireFromString("20.00")},
			{ParticipantID: suite.otherID, Amount: decimal.RequireFromString("20.00")},
		},
	}}
	settlements := []domain.Settlement{{
		SettlementID: uuid.NewString(),
		GroupID:      suite.groupID,
		PayerID:      suite.userID,
		PayeeID:      suite.otherID,
		Amount:       decimal.RequireFromString("20.00"),
	}}

	suite.mockExpenseRepo.On("ListExpensesByUser", ctx, suite.userID).Return(expenses, nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByUser", ctx, suite.userID).Return(settlements, nil).Once()
	suite.mockGroupRepo.On("ListGroupsByUser", ctx, suite.userID).Return([]domain.Group{}, nil).Once()

	result, err := suite.service.GetUserBalance(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.NetBalance.IsZero(), "settling the share should zero the net, got %s", result.NetBalance)
}

func (suite *BalanceServiceTestSuite) TestGetUserBalance_NoHistory() {
	ctx := context.Background()

	suite.mockExpenseRepo.On("ListExpensesByUser", ctx, suite.userID).Return(nil, nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByUser", ctx, suite.userID).Return(nil, nil).Once()
	suite.mockGroupRepo.On("ListGroupsByUser", ctx, suite.userID).Return([]domain.Group{}, nil).Once()

	result, err := suite.service.GetUserBalance(ctx, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNoData)
}

func (suite *BalanceServiceTestSuite) TestGetUserBalance_GroupNameLookupFailureDegrades() {
	ctx := context.Background()

	expenses := []domain.SharedExpense{{
		ExpenseID: uuid.NewString(),
		GroupID:   suite.groupID,
		PaidBy:    suite.userID,
		Amount:    decimal.RequireFromString("10.00"),
		Splits: []domain.ExpenseSplit{
			{ParticipantID: suite.userID, Amount: decimal.RequireFromString("10.00")},
		},
	}}

	suite.mockExpenseRepo.On("ListExpensesByUser", ctx, suite.userID).Return(expenses, nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByUser", ctx, suite.userID).Return(nil, nil).Once()
	suite.mockGroupRepo.On("ListGroupsByUser", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.GetUserBalance(ctx, suite.userID)

	suite.Require().NoError(err, "balance math must not depend on group names")
	suite.Require().Len(result.Groups, 1)
	suite.Empty(result.Groups[0].GroupName)
}

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"

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

// --- Mock SettlementRepository ---
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	args := m.Called(ctx, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsByGroup(ctx context.Context, groupID string) ([]domain.Settlement, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsByUser(ctx context.Context, userID string) ([]domain.Settlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

// --- Test Suite ---
type SettlementServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockSettlementRepository
	mockExpenseRepo *MockExpenseRepository
	mockGroups      *MockGroupService
	service         portssvc.SettlementSvcFacade

	groupID string
	payerID string
	payeeID string
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettlementRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockGroups = new(MockGroupService)
	suite.service = services.NewSettlementService(suite.mockRepo, suite.mockExpenseRepo, suite.mockGroups)

	suite.groupID = uuid.NewString()
	suite.payerID = uuid.NewString()
	suite.payeeID = uuid.NewString()
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_MarksCoveredSplitsPaid() {
	ctx := context.Background()
	expenseID := uuid.NewString()

	suite.mockGroups.On("GetGroupByID", ctx, suite.groupID, suite.payerID).
		Return(&domain.Group{GroupID: suite.groupID, CurrencyCode: "EUR"}, nil).Once()
	suite.mockGroups.On("AuthorizeMember", ctx, suite.groupID, suite.payeeID).
		Return(&domain.GroupMember{UserID: suite.payeeID}, nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).
		Return(&domain.SharedExpense{ExpenseID: expenseID, GroupID: suite.groupID}, nil).Once()
	suite.mockRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.PayerID == suite.payerID && s.PayeeID == suite.payeeID && s.CurrencyCode == "EUR"
	})).Return(nil).Once()
	suite.mockExpenseRepo.On("MarkSplitsPaid", ctx, []string{expenseID}, suite.payerID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	req := dto.CreateSettlementRequest{
		PayeeID:    suite.payeeID,
		Amount:     decimal.RequireFromString("25.50"),
		ExpenseIDs: []string{expenseID},
	}

	settlement, err := suite.service.CreateSettlement(ctx, suite.groupID, req, suite.payerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(settlement)
	suite.Equal([]string{expenseID}, settlement.ExpenseIDs)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_SelfPaymentRejected() {
	ctx := context.Background()

	suite.mockGroups.On("GetGroupByID", ctx, suite.groupID, suite.payerID).
		Return(&domain.Group{GroupID: suite.groupID, CurrencyCode: "EUR"}, nil).Once()

	req := dto.CreateSettlementRequest{
		PayeeID: suite.payerID,
		Amount:  decimal.RequireFromString("10.00"),
	}

	settlement, err := suite.service.CreateSettlement(ctx, suite.groupID, req, suite.payerID)

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_NonPositiveAmountRejected() {
	ctx := context.Background()

	suite.mockGroups.On("GetGroupByID", ctx, suite.groupID, suite.payerID).
		Return(&domain.Group{GroupID: suite.groupID, CurrencyCode: "EUR"}, nil).Once()

	req := dto.CreateSettlementRequest{
		PayeeID: suite.payeeID,
		Amount:  decimal.Zero,
	}

	settlement, err := suite.service.CreateSettlement(ctx, suite.groupID, req, suite.payerID)

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_ForeignExpenseRejected() {
	ctx := context.Background()
	expenseID := uuid.NewString()

	suite.mockGroups.On("GetGroupByID", ctx, suite.groupID, suite.payerID).
		Return(&domain.Group{GroupID: suite.groupID, CurrencyCode: "EUR"}, nil).Once()
	suite.mockGroups.On("AuthorizeMember", ctx, suite.groupID, suite.payeeID).
		Return(&domain.GroupMember{UserID: suite.payeeID}, nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).
		Return(&domain.SharedExpense{ExpenseID: expenseID, GroupID: uuid.NewString()}, nil).Once()

	req := dto.CreateSettlementRequest{
		PayeeID:    suite.payeeID,
		Amount:     decimal.RequireFromString("10.00"),
		ExpenseIDs: []string{expenseID},
	}

	settlement, err := suite.service.CreateSettlement(ctx, suite.groupID, req, suite.payerID)

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestGetSettlementByID_NonMemberForbidden() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	outsider := uuid.NewString()

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).
		Return(&domain.Settlement{SettlementID: settlementID, GroupID: suite.groupID}, nil).Once()
	suite.mockGroups.On("AuthorizeMember", ctx, suite.groupID, outsider).
		Return(nil, apperrors.ErrForbidden).Once()

	settlement, err := suite.service.GetSettlementByID(ctx, settlementID, outsider)

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *SettlementServiceTestSuite) TestListGroupSettlements_EmptyIsNotNil() {
	ctx := context.Background()
	requester := uuid.NewString()

	suite.mockGroups.On("AuthorizeMember", ctx, suite.groupID, requester).
		Return(&domain.GroupMember{UserID: requester}, nil).Once()
	suite.mockRepo.On("ListSettlementsByGroup", ctx, suite.groupID).Return(nil, nil).Once()

	settlements, err := suite.service.ListGroupSettlements(ctx, suite.groupID, requester)

	suite.Require().NoError(err)
	suite.NotNil(settlements)
	suite.Empty(settlements)
}

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
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

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/core/splitting"
	"github.com/spliteasy/spliteasy/internal/dto"
	"github.com/spliteasy/spliteasy/internal/middleware"
)

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.SharedExpense, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharedExpense), args.Error(1)
}

func (m *MockExpenseService) ListGroupExpenses(ctx context.Context, groupID string, params dto.ListExpensesParams, requestingUserID string) ([]domain.SharedExpense, string, error) {
	args := m.Called(ctx, groupID, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.SharedExpense), args.String(1), args.Error(2)
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.SharedExpense, error) {
	args := m.Called(ctx, groupID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharedExpense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	args := m.Called(ctx, expenseID, requestingUserID)
	return args.Error(0)
}

func (m *MockExpenseService) PreviewSplit(ctx context.Context, req dto.PreviewSplitRequest) ([]splitting.Split, splitting.Summary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, splitting.Summary{}, args.Error(2)
	}
	return args.Get(0).([]splitting.Split), args.Get(1).(splitting.Summary), args.Error(2)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

type ExpenseHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockExpenseService
	jwtSecret string
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSvc = new(MockExpenseService)
	v1 := suite.router.Group("/api/v1")
	registerExpenseRoutes(v1, suite.mockSvc)
}

func (suite *ExpenseHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "spliteasy-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ExpenseHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ExpenseHandlerTestSuite) TestListGroupExpenses_Success() {
	groupID := uuid.NewString()
	userID := uuid.NewString()
	nextToken := "b3BhcXVl"

	expenses := []domain.SharedExpense{
		{
			ExpenseID:     uuid.NewString(),
			GroupID:       groupID,
			Description:   "Groceries",
			Amount:        decimal.RequireFromString("30.00"),
			CurrencyCode:  "USD",
			PaidBy:        userID,
			SplitStrategy: domain.SplitEqual,
			ExpenseDate:   time.Now(),
		},
	}

	suite.mockSvc.On("ListGroupExpenses",
		mock.Anything,
		groupID,
		mock.MatchedBy(func(p dto.ListExpensesParams) bool { return p.Limit == 10 }),
		userID,
	).Return(expenses, nextToken, nil).Once()

	url := fmt.Sprintf("/api/v1/groups/%s/expenses?limit=10", groupID)
	w := suite.doRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListExpensesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Expenses, 1)
	suite.Equal(expenses[0].ExpenseID, body.Expenses[0].ExpenseID)
	suite.Equal(nextToken, body.NextToken)

	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_ForbiddenMapsTo403() {
	groupID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockSvc.On("CreateExpense", mock.Anything, groupID, mock.Anything, userID).
		Return(nil, apperrors.ErrForbidden).Once()

	reqBody := dto.CreateExpenseRequest{
		Description:    "Dinner",
		Amount:         decimal.RequireFromString("42.00"),
		PaidBy:         userID,
		ParticipantIDs: []string{userID},
		SplitStrategy:  domain.SplitEqual,
	}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/expenses", groupID), reqBody, userID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestPreviewSplit_Success() {
	userID := uuid.NewString()
	alice := uuid.NewString()
	bob := uuid.NewString()

	splits := []splitting.Split{
		{ParticipantID: alice, Amount: decimal.RequireFromString("0.02"), Percentage: decimal.NewFromInt(50), IsAdjusted: true},
		{ParticipantID: bob, Amount: decimal.RequireFromString("0.01"), Percentage: decimal.NewFromInt(50)},
	}
	summary := splitting.Summary{
		TotalSplit:    decimal.RequireFromString("0.03"),
		Difference:    decimal.Zero,
		AdjustedCount: 1,
		IsBalanced:    true,
	}

	suite.mockSvc.On("PreviewSplit", mock.Anything, mock.MatchedBy(func(r dto.PreviewSplitRequest) bool {
		return r.SplitStrategy == domain.SplitEqual && len(r.ParticipantIDs) == 2
	})).Return(splits, summary, nil).Once()

	reqBody := dto.PreviewSplitRequest{
		Amount:         decimal.RequireFromString("0.03"),
		ParticipantIDs: []string{alice, bob},
		SplitStrategy:  domain.SplitEqual,
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/expenses/preview", reqBody, userID)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.PreviewSplitResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Splits, 2)
	suite.True(body.Summary.IsBalanced)
	suite.Equal(1, body.Summary.AdjustedCount)

	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestDeleteExpense_NotFoundMapsTo404() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockSvc.On("DeleteExpense", mock.Anything, expenseID, userID).
		Return(apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/expenses/"+expenseID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/expenses/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "GetExpenseByID")
}

func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}

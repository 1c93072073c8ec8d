package services

import (
	"context"

	"github.com/spliteasy/spliteasy/internal/core/domain"
	"github.com/spliteasy/spliteasy/internal/dto"
)

// BudgetReaderSvc defines read operations for budgets.
type BudgetReaderSvc interface {
	// GetBudgetStatus retrieves one budget with its spend derived from the
	// user's transactions and expense shares.
	GetBudgetStatus(ctx context.Context, budgetID string, requestingUserID string) (*domain.BudgetStatus, error)

	// ListBudgets retrieves the user's budgets with status; month is
	// "YYYY-MM", empty means all months.
	ListBudgets(ctx context.Context, userID string, month string) ([]domain.BudgetStatus, error)
}

// BudgetWriterSvc defines write operations for budgets.
type BudgetWriterSvc interface {
	// CreateBudget persists a new budget for the user.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)

	// UpdateBudget updates a budget owned by the requesting user.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, requestingUserID string) (*domain.Budget, error)

	// DeleteBudget removes a budget owned by the requesting user.
	DeleteBudget(ctx context.Context, budgetID string, requestingUserID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces.
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}

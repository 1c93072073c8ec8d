package repositories

import (
	"context"
	"time"

	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// BudgetReader defines read operations for budgets.
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	// ListBudgetsByUser returns the user's budgets for a month (first day,
	// UTC); zero month means all months.
	ListBudgetsByUser(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets.
type BudgetWriter interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}

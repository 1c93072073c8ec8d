package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// ExpenseReader defines read operations for shared expenses.
type ExpenseReader interface {
	// FindExpenseByID returns the expense with its splits loaded.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.SharedExpense, error)

	// ListExpensesByGroup returns expenses for a group ordered by expense
	// date descending, keyset-paginated by (expense_date, created_at).
	ListExpensesByGroup(ctx context.Context, groupID string, limit int, afterDate *time.Time, afterCreated *time.Time) ([]domain.SharedExpense, error)

	// ListExpensesByUser returns every expense the user paid or holds a
	// split in, with splits loaded. Used by balance aggregation.
	ListExpensesByUser(ctx context.Context, userID string) ([]domain.SharedExpense, error)

	// SumUserSharesByCategory sums the user's split amounts for a category
	// within [from, to). Used by budget status.
	SumUserSharesByCategory(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error)
}

// ExpenseWriter defines write operations for shared expenses.
type ExpenseWriter interface {
	// SaveExpense persists the expense and its splits atomically.
	SaveExpense(ctx context.Context, expense domain.SharedExpense) error

	// DeleteExpense removes the expense; splits are owned by the expense
	// and removed with it.
	DeleteExpense(ctx context.Context, expenseID string) error

	// MarkSplitsPaid flags the participant's splits of the given expenses
	// as paid at the given time.
	MarkSplitsPaid(ctx context.Context, expenseIDs []string, participantID string, paidAt time.Time) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

package services

import (
	"context"

	"github.com/spliteasy/spliteasy/internal/core/domain"
	"github.com/spliteasy/spliteasy/internal/core/splitting"
	"github.com/spliteasy/spliteasy/internal/dto"
)

// ExpenseReaderSvc defines read operations for shared expenses.
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense with its splits; the requesting
	// user must be a member of the expense's group.
	GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.SharedExpense, error)

	// ListGroupExpenses returns a page of group expenses, newest first,
	// with an opaque token for the next page.
	ListGroupExpenses(ctx context.Context, groupID string, params dto.ListExpensesParams, requestingUserID string) ([]domain.SharedExpense, string, error)
}

// ExpenseWriterSvc defines write operations for shared expenses.
type ExpenseWriterSvc interface {
	// CreateExpense computes the splits and persists the expense atomically.
	CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.SharedExpense, error)

	// DeleteExpense removes an expense; allowed for the payer, the creator,
	// or a group admin.
	DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error
}

// SplitPreviewSvc computes splits without persisting anything.
type SplitPreviewSvc interface {
	PreviewSplit(ctx context.Context, req dto.PreviewSplitRequest) ([]splitting.Split, splitting.Summary, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	SplitPreviewSvc
}

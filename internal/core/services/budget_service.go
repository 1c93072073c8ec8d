package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/dto"
)

// budgetService derives budget status from two spend sources: the user's
// personal account transactions and their shares of group expenses.
type budgetService struct {
	BaseService
	budgetRepo  portsrepo.BudgetRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewBudgetService creates the budget service.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:  budgetRepo,
		accountRepo: accountRepo,
		expenseRepo: expenseRepo,
	}
}

func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	month, err := dto.ParseBudgetMonth(req.Month)
	if err != nil {
		return nil, fmt.Errorf("month must be formatted YYYY-MM: %w", apperrors.ErrValidation)
	}
	if !req.LimitAmount.IsPositive() {
		return nil, fmt.Errorf("budget limit must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		UserID:       userID,
		Category:     req.Category,
		CurrencyCode: req.CurrencyCode,
		Month:        month,
		LimitAmount:  req.LimitAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("budget for this category and month already exists: %w", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save budget")
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created", "budget_id", budget.BudgetID)
	return &budget, nil
}

func (s *budgetService) GetBudgetStatus(ctx context.Context, budgetID string, requestingUserID string) (*domain.BudgetStatus, error) {
	budget, err := s.findOwnedBudget(ctx, budgetID, requestingUserID)
	if err != nil {
		return nil, err
	}
	return s.deriveStatus(ctx, *budget)
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string, month string) ([]domain.BudgetStatus, error) {
	var monthStart time.Time
	if month != "" {
		parsed, err := dto.ParseBudgetMonth(month)
		if err != nil {
			return nil, fmt.Errorf("month must be formatted YYYY-MM: %w", apperrors.ErrValidation)
		}
		monthStart = parsed
	}

	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID, monthStart)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", "user_id", userID)
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	statuses := make([]domain.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		status, err := s.deriveStatus(ctx, b)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *status)
	}
	return statuses, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, requestingUserID string) (*domain.Budget, error) {
	budget, err := s.findOwnedBudget(ctx, budgetID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.LimitAmount != nil {
		if !req.LimitAmount.IsPositive() {
			return nil, fmt.Errorf("budget limit must be positive: %w", apperrors.ErrValidation)
		}
		budget.LimitAmount = *req.LimitAmount
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = requestingUserID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", "budget_id", budgetID)
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string, requestingUserID string) error {
	if _, err := s.findOwnedBudget(ctx, budgetID, requestingUserID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", "budget_id", budgetID)
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func (s *budgetService) findOwnedBudget(ctx context.Context, budgetID, requestingUserID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget", "budget_id", budgetID)
		}
		return nil, err
	}
	if budget.UserID != requestingUserID {
		return nil, fmt.Errorf("budget belongs to another user: %w", apperrors.ErrForbidden)
	}
	return budget, nil
}

func (s *budgetService) deriveStatus(ctx context.Context, budget domain.Budget) (*domain.BudgetStatus, error) {
	from := budget.Month
	to := from.AddDate(0, 1, 0)

	spentTxns, err := s.accountRepo.SumTransactionsByCategory(ctx, budget.UserID, budget.Category, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum transactions for budget", "budget_id", budget.BudgetID)
		return nil, fmt.Errorf("failed to derive budget status: %w", err)
	}
	spentShares, err := s.expenseRepo.SumUserSharesByCategory(ctx, budget.UserID, budget.Category, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum expense shares for budget", "budget_id", budget.BudgetID)
		return nil, fmt.Errorf("failed to derive budget status: %w", err)
	}

	spent := spentTxns.Add(spentShares)
	remaining := budget.LimitAmount.Sub(spent)
	return &domain.BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Remaining: remaining,
		IsOver:    remaining.LessThan(decimal.Zero),
	}, nil
}

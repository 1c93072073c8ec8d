package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/core/splitting"
	"github.com/spliteasy/spliteasy/internal/dto"
	"github.com/spliteasy/spliteasy/internal/utils/pagination"
)

// expenseService turns expense requests into calculated splits and persists
// them. Group membership gates every operation.
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	groupService portssvc.GroupSvcFacade
	currency     portssvc.CurrencyReaderSvc
}

// ExpenseServiceOption configures the expense service.
type ExpenseServiceOption func(*expenseService)

// WithGroupService wires the group facade used for membership checks and
// group currency defaults.
func WithGroupService(groups portssvc.GroupSvcFacade) ExpenseServiceOption {
	return func(s *expenseService) { s.groupService = groups }
}

// WithCurrencyReader wires the currency reader used to resolve precision.
func WithCurrencyReader(currency portssvc.CurrencyReaderSvc) ExpenseServiceOption {
	return func(s *expenseService) { s.currency = currency }
}

// NewExpenseService creates the expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, opts ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	s := &expenseService{expenseRepo: expenseRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *expenseService) CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.SharedExpense, error) {
	group, err := s.groupService.GetGroupByID(ctx, groupID, creatorUserID)
	if err != nil {
		return nil, err
	}

	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		currencyCode = group.CurrencyCode
	}
	precision, err := s.resolvePrecision(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	// The payer and every participant must belong to the group.
	if _, err := s.groupService.AuthorizeMember(ctx, groupID, req.PaidBy); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, fmt.Errorf("payer %s is not a group member: %w", req.PaidBy, apperrors.ErrValidation)
		}
		return nil, err
	}
	participants := make([]splitting.Participant, len(req.ParticipantIDs))
	for i, id := range req.ParticipantIDs {
		if _, err := s.groupService.AuthorizeMember(ctx, groupID, id); err != nil {
			if errors.Is(err, apperrors.ErrForbidden) {
				return nil, fmt.Errorf("participant %s is not a group member: %w", id, apperrors.ErrValidation)
			}
			return nil, err
		}
		participants[i] = splitting.Participant{ID: id}
	}

	rounding := req.RoundingPolicy
	if rounding == "" {
		rounding = domain.RoundDistribute
	}

	splits, err := splitting.Calculate(splitting.Options{
		TotalAmount:       req.Amount,
		Participants:      participants,
		Strategy:          req.SplitStrategy,
		CustomAmounts:     req.CustomAmounts,
		CustomPercentages: req.CustomPercentages,
		Precision:         precision,
		Rounding:          rounding,
	})
	if err != nil {
		return nil, err
	}
	if splitting.HasNegativeShare(splits) {
		return nil, fmt.Errorf("split produces a negative share: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	expenseDate := now
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}

	expense := domain.SharedExpense{
		ExpenseID:      uuid.NewString(),
		GroupID:        groupID,
		Description:    req.Description,
		Category:       req.Category,
		Amount:         req.Amount,
		CurrencyCode:   currencyCode,
		PaidBy:         req.PaidBy,
		SplitStrategy:  req.SplitStrategy,
		RoundingPolicy: rounding,
		ExpenseDate:    expenseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	expense.Splits = make([]domain.ExpenseSplit, len(splits))
	for i, sp := range splits {
		expense.Splits[i] = domain.ExpenseSplit{
			ExpenseID:     expense.ExpenseID,
			ParticipantID: sp.ParticipantID,
			Amount:        sp.Amount,
			IsAdjusted:    sp.IsAdjusted,
		}
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", "group_id", groupID)
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created", "expense_id", expense.ExpenseID, "group_id", groupID)
	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.SharedExpense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", "expense_id", expenseID)
		}
		return nil, err
	}

	if _, err := s.groupService.AuthorizeMember(ctx, expense.GroupID, requestingUserID); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListGroupExpenses(ctx context.Context, groupID string, params dto.ListExpensesParams, requestingUserID string) ([]domain.SharedExpense, string, error) {
	if _, err := s.groupService.AuthorizeMember(ctx, groupID, requestingUserID); err != nil {
		return nil, "", err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var afterDate, afterCreated *time.Time
	if params.NextToken != "" {
		d, c, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid pagination token: %w", apperrors.ErrValidation)
		}
		afterDate, afterCreated = &d, &c
	}

	// Fetch one extra row to know whether another page exists.
	expenses, err := s.expenseRepo.ListExpensesByGroup(ctx, groupID, limit+1, afterDate, afterCreated)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", "group_id", groupID)
		return nil, "", fmt.Errorf("failed to list expenses: %w", err)
	}

	nextToken := ""
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		nextToken = pagination.EncodeToken(last.ExpenseDate, last.CreatedAt)
	}
	return expenses, nextToken, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}

	member, err := s.groupService.AuthorizeMember(ctx, expense.GroupID, requestingUserID)
	if err != nil {
		return err
	}
	allowed := requestingUserID == expense.PaidBy ||
		requestingUserID == expense.CreatedBy ||
		member.Role == domain.GroupRoleAdmin
	if !allowed {
		return fmt.Errorf("only the payer, the creator or a group admin may delete an expense: %w", apperrors.ErrForbidden)
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense", "expense_id", expenseID)
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.LogInfo(ctx, "Expense deleted", "expense_id", expenseID)
	return nil
}

func (s *expenseService) PreviewSplit(ctx context.Context, req dto.PreviewSplitRequest) ([]splitting.Split, splitting.Summary, error) {
	precision := splitting.DefaultPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}
	rounding := req.RoundingPolicy
	if rounding == "" {
		rounding = domain.RoundDistribute
	}

	participants := make([]splitting.Participant, len(req.ParticipantIDs))
	for i, id := range req.ParticipantIDs {
		participants[i] = splitting.Participant{ID: id}
	}

	splits, err := splitting.Calculate(splitting.Options{
		TotalAmount:       req.Amount,
		Participants:      participants,
		Strategy:          req.SplitStrategy,
		CustomAmounts:     req.CustomAmounts,
		CustomPercentages: req.CustomPercentages,
		Precision:         precision,
		Rounding:          rounding,
	})
	if err != nil {
		return nil, splitting.Summary{}, err
	}

	return splits, splitting.Summarize(splits, req.Amount), nil
}

func (s *expenseService) resolvePrecision(ctx context.Context, currencyCode string) (int32, error) {
	currency, err := s.currency.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("unknown currency %s: %w", currencyCode, apperrors.ErrValidation)
		}
		return 0, fmt.Errorf("failed to resolve currency %s: %w", currencyCode, err)
	}
	return currency.Precision, nil
}

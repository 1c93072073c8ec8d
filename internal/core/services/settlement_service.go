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
	"github.com/spliteasy/spliteasy/internal/dto"
)

type settlementService struct {
	BaseService
	settlementRepo portsrepo.SettlementRepositoryFacade
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	groupService   portssvc.GroupSvcFacade
}

// NewSettlementService creates the settlement service.
func NewSettlementService(
	settlementRepo portsrepo.SettlementRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	groupService portssvc.GroupSvcFacade,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		settlementRepo: settlementRepo,
		expenseRepo:    expenseRepo,
		groupService:   groupService,
	}
}

func (s *settlementService) CreateSettlement(ctx context.Context, groupID string, req dto.CreateSettlementRequest, payerUserID string) (*domain.Settlement, error) {
	group, err := s.groupService.GetGroupByID(ctx, groupID, payerUserID)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("settlement amount must be positive: %w", apperrors.ErrValidation)
	}
	if req.PayeeID == payerUserID {
		return nil, fmt.Errorf("payer and payee must differ: %w", apperrors.ErrValidation)
	}
	if _, err := s.groupService.AuthorizeMember(ctx, groupID, req.PayeeID); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, fmt.Errorf("payee %s is not a group member: %w", req.PayeeID, apperrors.ErrValidation)
		}
		return nil, err
	}

	// Covered expenses must belong to the same group.
	for _, expenseID := range req.ExpenseIDs {
		expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("unknown expense %s: %w", expenseID, apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to validate covered expense: %w", err)
		}
		if expense.GroupID != groupID {
			return nil, fmt.Errorf("expense %s belongs to another group: %w", expenseID, apperrors.ErrValidation)
		}
	}

	now := time.Now()
	settledAt := now
	if req.SettledAt != nil {
		settledAt = *req.SettledAt
	}

	settlement := domain.Settlement{
		SettlementID: uuid.NewString(),
		GroupID:      groupID,
		PayerID:      payerUserID,
		PayeeID:      req.PayeeID,
		Amount:       req.Amount,
		CurrencyCode: group.CurrencyCode,
		Note:         req.Note,
		SettledAt:    settledAt,
		ExpenseIDs:   req.ExpenseIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     payerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: payerUserID,
		},
	}

	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		s.LogError(ctx, err, "Failed to save settlement", "group_id", groupID)
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	if len(req.ExpenseIDs) > 0 {
		if err := s.expenseRepo.MarkSplitsPaid(ctx, req.ExpenseIDs, payerUserID, settledAt); err != nil {
			// The settlement itself is recorded; a failed flag update only
			// affects the per-split paid markers.
			s.LogError(ctx, err, "Failed to mark splits paid", "settlement_id", settlement.SettlementID)
		}
	}

	s.LogInfo(ctx, "Settlement recorded", "settlement_id", settlement.SettlementID, "group_id", groupID)
	return &settlement, nil
}

func (s *settlementService) GetSettlementByID(ctx context.Context, settlementID string, requestingUserID string) (*domain.Settlement, error) {
	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find settlement", "settlement_id", settlementID)
		}
		return nil, err
	}

	if _, err := s.groupService.AuthorizeMember(ctx, settlement.GroupID, requestingUserID); err != nil {
		return nil, err
	}
	return settlement, nil
}

func (s *settlementService) ListGroupSettlements(ctx context.Context, groupID string, requestingUserID string) ([]domain.Settlement, error) {
	if _, err := s.groupService.AuthorizeMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}

	settlements, err := s.settlementRepo.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settlements", "group_id", groupID)
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	if settlements == nil {
		return []domain.Settlement{}, nil
	}
	return settlements, nil
}

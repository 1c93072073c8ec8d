package services

import (
	"context"
	"fmt"

	"github.com/spliteasy/spliteasy/internal/core/balances"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
)

// balanceService materializes a user's expense and settlement history and
// hands it to the pure aggregator.
type balanceService struct {
	BaseService
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
	groupRepo      portsrepo.GroupRepositoryFacade
}

// NewBalanceService creates the balance service.
func NewBalanceService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	settlementRepo portsrepo.SettlementRepositoryFacade,
	groupRepo portsrepo.GroupRepositoryFacade,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		groupRepo:      groupRepo,
	}
}

func (s *balanceService) GetUserBalance(ctx context.Context, userID string) (*balances.Result, error) {
	expenses, err := s.expenseRepo.ListExpensesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expenses for balance", "user_id", userID)
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	settlements, err := s.settlementRepo.ListSettlementsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settlements for balance", "user_id", userID)
		return nil, fmt.Errorf("failed to load settlements: %w", err)
	}

	groupNames := map[string]string{}
	groups, err := s.groupRepo.ListGroupsByUser(ctx, userID)
	if err != nil {
		// Balance math does not depend on names; degrade to bare IDs.
		s.LogError(ctx, err, "Failed to load group names for balance", "user_id", userID)
	} else {
		for _, g := range groups {
			groupNames[g.GroupID] = g.Name
		}
	}

	expenseRecords := make([]balances.ExpenseRecord, len(expenses))
	for i, e := range expenses {
		rec := balances.ExpenseRecord{
			ExpenseID: e.ExpenseID,
			GroupID:   e.GroupID,
			GroupName: groupNames[e.GroupID],
			PaidBy:    e.PaidBy,
			Amount:    e.Amount,
			Shares:    make([]balances.ShareRecord, len(e.Splits)),
		}
		for j, sp := range e.Splits {
			rec.Shares[j] = balances.ShareRecord{
				ParticipantID: sp.ParticipantID,
				Amount:        sp.Amount,
				Paid:          sp.Paid,
				PaidAt:        sp.PaidAt,
			}
		}
		expenseRecords[i] = rec
	}

	settlementRecords := make([]balances.SettlementRecord, len(settlements))
	for i, st := range settlements {
		settlementRecords[i] = balances.SettlementRecord{
			SettlementID: st.SettlementID,
			GroupID:      st.GroupID,
			PayerID:      st.PayerID,
			PayeeID:      st.PayeeID,
			Amount:       st.Amount,
			SettledAt:    st.SettledAt,
			ExpenseIDs:   st.ExpenseIDs,
		}
	}

	return balances.ComputeUserBalance(userID, expenseRecords, settlementRecords)
}

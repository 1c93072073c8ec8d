package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		CurrencyRepo:   newPgxCurrencyRepository(dbPool),
		GroupRepo:      newPgxGroupRepository(dbPool),
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		SettlementRepo: newPgxSettlementRepository(dbPool),
		AccountRepo:    newPgxAccountRepository(dbPool),
		BudgetRepo:     newPgxBudgetRepository(dbPool),
	}
}

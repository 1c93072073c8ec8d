// Package repositories defines the persistence ports the core services
// depend on. Implementations live under internal/repositories.
package repositories

// RepositoryProvider aggregates every repository the service layer needs.
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	CurrencyRepo   CurrencyRepositoryFacade
	GroupRepo      GroupRepositoryFacade
	ExpenseRepo    ExpenseRepositoryFacade
	SettlementRepo SettlementRepositoryFacade
	AccountRepo    AccountRepositoryFacade
	BudgetRepo     BudgetRepositoryFacade
}

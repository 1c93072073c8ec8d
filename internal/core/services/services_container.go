package services

import (
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/platform/cache"
	"github.com/spliteasy/spliteasy/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	currencyCache := cache.New[domain.Currency](cfg.CacheSize, cfg.CacheTTL)
	container.Currency = NewCurrencyService(repos.CurrencyRepo, currencyCache)

	// Group service comes next since expense and settlement services depend
	// on it for membership checks.
	container.Group = NewGroupService(repos.GroupRepo, repos.CurrencyRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		WithGroupService(container.Group),
		WithCurrencyReader(container.Currency),
	)
	container.Settlement = NewSettlementService(repos.SettlementRepo, repos.ExpenseRepo, container.Group)
	container.Balance = NewBalanceService(repos.ExpenseRepo, repos.SettlementRepo, repos.GroupRepo)

	container.Account = NewAccountService(repos.AccountRepo, container.Currency)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.AccountRepo, repos.ExpenseRepo)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.TokenSvcFacade       = (*tokenService)(nil)
	_ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)
	_ portssvc.CurrencySvcFacade    = (*currencyService)(nil)
	_ portssvc.GroupSvcFacade       = (*groupService)(nil)
	_ portssvc.ExpenseSvcFacade     = (*expenseService)(nil)
	_ portssvc.SettlementSvcFacade  = (*settlementService)(nil)
	_ portssvc.BalanceSvcFacade     = (*balanceService)(nil)
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.BudgetSvcFacade      = (*budgetService)(nil)
)

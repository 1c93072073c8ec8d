// Package services defines the service-layer ports consumed by the HTTP
// handlers. Implementations live under internal/core/services.
package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Currency    CurrencySvcFacade
	Group       GroupSvcFacade
	Expense     ExpenseSvcFacade
	Settlement  SettlementSvcFacade
	Balance     BalanceSvcFacade
	Account     AccountSvcFacade
	Budget      BudgetSvcFacade
}

package services

import (
	"context"

	"github.com/spliteasy/spliteasy/internal/core/domain"
	"github.com/spliteasy/spliteasy/internal/dto"
)

// AccountReaderSvc defines read operations for personal accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account owned by the requesting user.
	GetAccountByID(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts of the user.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for personal accounts.
type AccountWriterSvc interface {
	// CreateAccount persists a new account for the user.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an account owned by the requesting user.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)
}

// TransactionSvc defines operations for account transactions.
type TransactionSvc interface {
	// CreateTransaction records a movement and updates the account balance.
	CreateTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions returns a page of the account's transactions, newest
	// first, with an opaque token for the next page.
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams, requestingUserID string) ([]domain.Transaction, string, error)
}

// AccountSvcFacade combines account and transaction service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	TransactionSvc
}

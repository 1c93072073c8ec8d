package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// AccountReader defines read operations for personal accounts.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for personal accounts.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// TransactionReader defines read operations for account transactions.
type TransactionReader interface {
	// ListTransactionsByAccount returns transactions ordered by transaction
	// date descending, keyset-paginated by (transaction_date, created_at).
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, afterDate *time.Time, afterCreated *time.Time) ([]domain.Transaction, error)

	// SumTransactionsByCategory sums debit transactions of the user for a
	// category within [from, to). Used by budget status.
	SumTransactionsByCategory(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for account transactions.
type TransactionWriter interface {
	// SaveTransaction persists the transaction and applies its signed
	// amount to the account balance atomically.
	SaveTransaction(ctx context.Context, txn domain.Transaction, newBalance decimal.Decimal) error
}

// AccountRepositoryFacade combines account and transaction repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	TransactionReader
	TransactionWriter
}

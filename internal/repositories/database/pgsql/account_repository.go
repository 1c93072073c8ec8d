package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(db *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, name, account_type, currency_code, balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.UserID,
		account.Name,
		account.AccountType,
		account.CurrencyCode,
		account.Balance,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	var a domain.Account
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&a.AccountID,
		&a.UserID,
		&a.Name,
		&a.AccountType,
		&a.CurrencyCode,
		&a.Balance,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return &a, nil
}

func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts of user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.AccountID,
			&a.UserID,
			&a.Name,
			&a.AccountType,
			&a.CurrencyCode,
			&a.Balance,
			&a.IsActive,
			&a.CreatedAt,
			&a.CreatedBy,
			&a.LastUpdatedAt,
			&a.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}
	return accounts, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		account.Name,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

const transactionColumns = `transaction_id, account_id, user_id, amount, transaction_type, category, notes,
	transaction_date, created_at, created_by, last_updated_at, last_updated_by`

// SaveTransaction inserts the transaction and writes the new account balance
// in one transaction.
func (r *PgxAccountRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, newBalance decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, txnQuery,
		txn.TransactionID,
		txn.AccountID,
		txn.UserID,
		txn.Amount,
		txn.TransactionType,
		txn.Category,
		txn.Notes,
		txn.TransactionDate,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	balanceQuery := `
		UPDATE accounts
		SET balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4;
	`
	cmdTag, err := tx.Exec(ctx, balanceQuery, newBalance, txn.LastUpdatedAt, txn.LastUpdatedBy, txn.AccountID)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %w", apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, afterDate *time.Time, afterCreated *time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1`
	args := []any{accountID}
	if afterDate != nil && afterCreated != nil {
		query += ` AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, *afterDate, *afterCreated)
	}
	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions of account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.TransactionID,
			&t.AccountID,
			&t.UserID,
			&t.Amount,
			&t.TransactionType,
			&t.Category,
			&t.Notes,
			&t.TransactionDate,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}

func (r *PgxAccountRepository) SumTransactionsByCategory(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND category = $2 AND transaction_type = 'DEBIT'
			AND transaction_date >= $3 AND transaction_date < $4;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, category, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}

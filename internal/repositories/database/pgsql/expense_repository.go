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

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, group_id, description, category, amount, currency_code, paid_by,
	split_strategy, rounding_policy, expense_date, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(rows pgx.Rows) (domain.SharedExpense, error) {
	var e domain.SharedExpense
	err := rows.Scan(
		&e.ExpenseID,
		&e.GroupID,
		&e.Description,
		&e.Category,
		&e.Amount,
		&e.CurrencyCode,
		&e.PaidBy,
		&e.SplitStrategy,
		&e.RoundingPolicy,
		&e.ExpenseDate,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// SaveExpense inserts the expense and all its splits in one transaction.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.SharedExpense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	expenseQuery := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, expenseQuery,
		expense.ExpenseID,
		expense.GroupID,
		expense.Description,
		expense.Category,
		expense.Amount,
		expense.CurrencyCode,
		expense.PaidBy,
		expense.SplitStrategy,
		expense.RoundingPolicy,
		expense.ExpenseDate,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}

	splitQuery := `
		INSERT INTO expense_splits (expense_id, participant_id, amount, is_adjusted, paid, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, s := range expense.Splits {
		_, err = tx.Exec(ctx, splitQuery,
			s.ExpenseID,
			s.ParticipantID,
			s.Amount,
			s.IsAdjusted,
			s.Paid,
			s.PaidAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save split for participant %s: %w", s.ParticipantID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.SharedExpense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	var e domain.SharedExpense
	err := r.Pool.QueryRow(ctx, query, expenseID).Scan(
		&e.ExpenseID,
		&e.GroupID,
		&e.Description,
		&e.Category,
		&e.Amount,
		&e.CurrencyCode,
		&e.PaidBy,
		&e.SplitStrategy,
		&e.RoundingPolicy,
		&e.ExpenseDate,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}

	splits, err := r.loadSplits(ctx, []string{expenseID})
	if err != nil {
		return nil, err
	}
	e.Splits = splits[expenseID]
	return &e, nil
}

func (r *PgxExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string, limit int, afterDate *time.Time, afterCreated *time.Time) ([]domain.SharedExpense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE group_id = $1`
	args := []any{groupID}
	if afterDate != nil && afterCreated != nil {
		query += ` AND (expense_date, created_at) < ($2, $3)`
		args = append(args, *afterDate, *afterCreated)
	}
	query += fmt.Sprintf(` ORDER BY expense_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses of group %s: %w", groupID, err)
	}
	defer rows.Close()

	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, err
	}
	return r.attachSplits(ctx, expenses)
}

func (r *PgxExpenseRepository) ListExpensesByUser(ctx context.Context, userID string) ([]domain.SharedExpense, error) {
	query := `
		SELECT DISTINCT e.expense_id, e.group_id, e.description, e.category, e.amount, e.currency_code, e.paid_by,
			e.split_strategy, e.rounding_policy, e.expense_date, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM expenses e
		LEFT JOIN expense_splits s ON s.expense_id = e.expense_id
		WHERE e.paid_by = $1 OR s.participant_id = $1
		ORDER BY e.expense_date DESC, e.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses of user %s: %w", userID, err)
	}
	defer rows.Close()

	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, err
	}
	return r.attachSplits(ctx, expenses)
}

func (r *PgxExpenseRepository) SumUserSharesByCategory(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.amount), 0)
		FROM expense_splits s
		JOIN expenses e ON e.expense_id = s.expense_id
		WHERE s.participant_id = $1 AND e.category = $2
			AND e.expense_date >= $3 AND e.expense_date < $4;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, category, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expense shares: %w", err)
	}
	return sum, nil
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	// Splits go with the expense via ON DELETE CASCADE.
	query := `DELETE FROM expenses WHERE expense_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxExpenseRepository) MarkSplitsPaid(ctx context.Context, expenseIDs []string, participantID string, paidAt time.Time) error {
	if len(expenseIDs) == 0 {
		return nil
	}
	query := `
		UPDATE expense_splits
		SET paid = TRUE, paid_at = $1
		WHERE participant_id = $2 AND expense_id = ANY($3);
	`
	_, err := r.Pool.Exec(ctx, query, paidAt, participantID, expenseIDs)
	if err != nil {
		return fmt.Errorf("failed to mark splits paid: %w", err)
	}
	return nil
}

func collectExpenses(rows pgx.Rows) ([]domain.SharedExpense, error) {
	expenses := []domain.SharedExpense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}
	return expenses, nil
}

// attachSplits loads the splits of all given expenses in one query.
func (r *PgxExpenseRepository) attachSplits(ctx context.Context, expenses []domain.SharedExpense) ([]domain.SharedExpense, error) {
	if len(expenses) == 0 {
		return expenses, nil
	}
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ExpenseID
	}
	splits, err := r.loadSplits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].Splits = splits[expenses[i].ExpenseID]
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) loadSplits(ctx context.Context, expenseIDs []string) (map[string][]domain.ExpenseSplit, error) {
	query := `
		SELECT expense_id, participant_id, amount, is_adjusted, paid, paid_at
		FROM expense_splits
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, participant_id;
	`
	rows, err := r.Pool.Query(ctx, query, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense splits: %w", err)
	}
	defer rows.Close()

	splits := map[string][]domain.ExpenseSplit{}
	for rows.Next() {
		var s domain.ExpenseSplit
		if err := rows.Scan(
			&s.ExpenseID,
			&s.ParticipantID,
			&s.Amount,
			&s.IsAdjusted,
			&s.Paid,
			&s.PaidAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		splits[s.ExpenseID] = append(splits[s.ExpenseID], s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating split rows: %w", rows.Err())
	}
	return splits, nil
}

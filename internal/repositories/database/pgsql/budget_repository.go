package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
)

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(db *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, user_id, category, currency_code, month, limit_amount,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		budget.BudgetID,
		budget.UserID,
		budget.Category,
		budget.CurrencyCode,
		budget.Month,
		budget.LimitAmount,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("budget for %s in %s already exists: %w",
				budget.Category, budget.Month.Format("2006-01"), apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	var b domain.Budget
	err := r.Pool.QueryRow(ctx, query, budgetID).Scan(
		&b.BudgetID,
		&b.UserID,
		&b.Category,
		&b.CurrencyCode,
		&b.Month,
		&b.LimitAmount,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	return &b, nil
}

func (r *PgxBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1`
	args := []any{userID}
	if !month.IsZero() {
		query += ` AND month = $2`
		args = append(args, month)
	}
	query += ` ORDER BY month DESC, category;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets of user %s: %w", userID, err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(
			&b.BudgetID,
			&b.UserID,
			&b.Category,
			&b.CurrencyCode,
			&b.Month,
			&b.LimitAmount,
			&b.CreatedAt,
			&b.CreatedBy,
			&b.LastUpdatedAt,
			&b.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", rows.Err())
	}
	return budgets, nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		UPDATE budgets
		SET limit_amount = $1, last_updated_at = $2, last_updated_by = $3
		WHERE budget_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		budget.LimitAmount,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
		budget.BudgetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("budget not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	query := `DELETE FROM budgets WHERE budget_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("budget not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

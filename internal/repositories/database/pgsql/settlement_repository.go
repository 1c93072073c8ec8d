package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
)

type PgxSettlementRepository struct {
	BaseRepository
}

func newPgxSettlementRepository(db *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

const settlementColumns = `settlement_id, group_id, payer_id, payee_id, amount, currency_code, note, settled_at,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveSettlement inserts the settlement and its expense links in one transaction.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	settlementQuery := `
		INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, settlementQuery,
		settlement.SettlementID,
		settlement.GroupID,
		settlement.PayerID,
		settlement.PayeeID,
		settlement.Amount,
		settlement.CurrencyCode,
		settlement.Note,
		settlement.SettledAt,
		settlement.CreatedAt,
		settlement.CreatedBy,
		settlement.LastUpdatedAt,
		settlement.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settlement: %w", err)
	}

	linkQuery := `INSERT INTO settlement_expenses (settlement_id, expense_id) VALUES ($1, $2);`
	for _, expenseID := range settlement.ExpenseIDs {
		if _, err = tx.Exec(ctx, linkQuery, settlement.SettlementID, expenseID); err != nil {
			return fmt.Errorf("failed to link settlement to expense %s: %w", expenseID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_id = $1;`
	var s domain.Settlement
	err := r.Pool.QueryRow(ctx, query, settlementID).Scan(
		&s.SettlementID,
		&s.GroupID,
		&s.PayerID,
		&s.PayeeID,
		&s.Amount,
		&s.CurrencyCode,
		&s.Note,
		&s.SettledAt,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settlement %s: %w", settlementID, err)
	}

	links, err := r.loadExpenseIDs(ctx, []string{settlementID})
	if err != nil {
		return nil, err
	}
	s.ExpenseIDs = links[settlementID]
	return &s, nil
}

func (r *PgxSettlementRepository) ListSettlementsByGroup(ctx context.Context, groupID string) ([]domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
		WHERE group_id = $1 ORDER BY settled_at DESC, created_at DESC;`
	return r.querySettlements(ctx, query, groupID)
}

func (r *PgxSettlementRepository) ListSettlementsByUser(ctx context.Context, userID string) ([]domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
		WHERE payer_id = $1 OR payee_id = $1 ORDER BY settled_at DESC, created_at DESC;`
	return r.querySettlements(ctx, query, userID)
}

func (r *PgxSettlementRepository) querySettlements(ctx context.Context, query string, arg any) ([]domain.Settlement, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	settlements := []domain.Settlement{}
	for rows.Next() {
		var s domain.Settlement
		if err := rows.Scan(
			&s.SettlementID,
			&s.GroupID,
			&s.PayerID,
			&s.PayeeID,
			&s.Amount,
			&s.CurrencyCode,
			&s.Note,
			&s.SettledAt,
			&s.CreatedAt,
			&s.CreatedBy,
			&s.LastUpdatedAt,
			&s.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		settlements = append(settlements, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", rows.Err())
	}

	if len(settlements) == 0 {
		return settlements, nil
	}
	ids := make([]string, len(settlements))
	for i, s := range settlements {
		ids[i] = s.SettlementID
	}
	links, err := r.loadExpenseIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range settlements {
		settlements[i].ExpenseIDs = links[settlements[i].SettlementID]
	}
	return settlements, nil
}

func (r *PgxSettlementRepository) loadExpenseIDs(ctx context.Context, settlementIDs []string) (map[string][]string, error) {
	query := `
		SELECT settlement_id, expense_id
		FROM settlement_expenses
		WHERE settlement_id = ANY($1)
		ORDER BY settlement_id, expense_id;
	`
	rows, err := r.Pool.Query(ctx, query, settlementIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlement expense links: %w", err)
	}
	defer rows.Close()

	links := map[string][]string{}
	for rows.Next() {
		var settlementID, expenseID string
		if err := rows.Scan(&settlementID, &expenseID); err != nil {
			return nil, fmt.Errorf("failed to scan settlement link row: %w", err)
		}
		links[settlementID] = append(links[settlementID], expenseID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating settlement link rows: %w", rows.Err())
	}
	return links, nil
}

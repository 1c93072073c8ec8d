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

type PgxGroupRepository struct {
	BaseRepository
}

func newPgxGroupRepository(db *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

// SaveGroup inserts the group and its creator membership in one transaction.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group, creatorMember domain.GroupMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	groupQuery := `
		INSERT INTO groups (group_id, name, description, currency_code,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, groupQuery,
		group.GroupID,
		group.Name,
		group.Description,
		group.CurrencyCode,
		group.CreatedAt,
		group.CreatedBy,
		group.LastUpdatedAt,
		group.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save group: %w", err)
	}

	memberQuery := `
		INSERT INTO group_members (group_id, user_id, role,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, memberQuery,
		creatorMember.GroupID,
		creatorMember.UserID,
		creatorMember.Role,
		creatorMember.CreatedAt,
		creatorMember.CreatedBy,
		creatorMember.LastUpdatedAt,
		creatorMember.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save creator membership: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `
		SELECT group_id, name, description, currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM groups
		WHERE group_id = $1;
	`
	var g domain.Group
	err := r.Pool.QueryRow(ctx, query, groupID).Scan(
		&g.GroupID,
		&g.Name,
		&g.Description,
		&g.CurrencyCode,
		&g.CreatedAt,
		&g.CreatedBy,
		&g.LastUpdatedAt,
		&g.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	return &g, nil
}

func (r *PgxGroupRepository) ListGroupsByUser(ctx context.Context, userID string) ([]domain.Group, error) {
	query := `
		SELECT g.group_id, g.name, g.description, g.currency_code,
			g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.group_id
		WHERE gm.user_id = $1
		ORDER BY g.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for user %s: %w", userID, err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(
			&g.GroupID,
			&g.Name,
			&g.Description,
			&g.CurrencyCode,
			&g.CreatedAt,
			&g.CreatedBy,
			&g.LastUpdatedAt,
			&g.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, g)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", rows.Err())
	}
	return groups, nil
}

func (r *PgxGroupRepository) ListMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	query := `
		SELECT group_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by
		FROM group_members
		WHERE group_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of group %s: %w", groupID, err)
	}
	defer rows.Close()

	members := []domain.GroupMember{}
	for rows.Next() {
		var m domain.GroupMember
		if err := rows.Scan(
			&m.GroupID,
			&m.UserID,
			&m.Role,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", rows.Err())
	}
	return members, nil
}

func (r *PgxGroupRepository) FindMember(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	query := `
		SELECT group_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by
		FROM group_members
		WHERE group_id = $1 AND user_id = $2;
	`
	var m domain.GroupMember
	err := r.Pool.QueryRow(ctx, query, groupID, userID).Scan(
		&m.GroupID,
		&m.UserID,
		&m.Role,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member %s of group %s: %w", userID, groupID, err)
	}
	return &m, nil
}

func (r *PgxGroupRepository) UpdateGroup(ctx context.Context, group domain.Group) error {
	query := `
		UPDATE groups
		SET name = $1, description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE group_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		group.Name,
		group.Description,
		group.LastUpdatedAt,
		group.LastUpdatedBy,
		group.GroupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("group not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxGroupRepository) AddMember(ctx context.Context, member domain.GroupMember) error {
	query := `
		INSERT INTO group_members (group_id, user_id, role,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		member.GroupID,
		member.UserID,
		member.Role,
		member.CreatedAt,
		member.CreatedBy,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s is already a member: %w", member.UserID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (r *PgxGroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("membership not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

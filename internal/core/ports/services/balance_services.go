package services

import (
	"context"

	"github.com/spliteasy/spliteasy/internal/core/balances"
)

// BalanceSvcFacade aggregates a user's balances across their groups.
type BalanceSvcFacade interface {
	// GetUserBalance returns the user's per-group and overall balance.
	// Returns apperrors.ErrNoData when the user has no expense or
	// settlement history at all.
	GetUserBalance(ctx context.Context, userID string) (*balances.Result, error)
}

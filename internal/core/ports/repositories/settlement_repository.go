package repositories

import (
	"context"

	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// SettlementReader defines read operations for settlements.
type SettlementReader interface {
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]domain.Settlement, error)
	// ListSettlementsByUser returns settlements where the user is payer or
	// payee. Used by balance aggregation.
	ListSettlementsByUser(ctx context.Context, userID string) ([]domain.Settlement, error)
}

// SettlementWriter defines write operations for settlements.
type SettlementWriter interface {
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces.
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}

package services

import (
	"context"

	"github.com/spliteasy/spliteasy/internal/core/domain"
	"github.com/spliteasy/spliteasy/internal/dto"
)

// SettlementReaderSvc defines read operations for settlements.
type SettlementReaderSvc interface {
	// GetSettlementByID retrieves a settlement; the requesting user must be
	// a member of the settlement's group.
	GetSettlementByID(ctx context.Context, settlementID string, requestingUserID string) (*domain.Settlement, error)

	// ListGroupSettlements retrieves a group's settlements, newest first.
	ListGroupSettlements(ctx context.Context, groupID string, requestingUserID string) ([]domain.Settlement, error)
}

// SettlementWriterSvc defines write operations for settlements.
type SettlementWriterSvc interface {
	// CreateSettlement records a payment from the requesting user to the
	// payee and marks the covered expense splits as paid.
	CreateSettlement(ctx context.Context, groupID string, req dto.CreateSettlementRequest, payerUserID string) (*domain.Settlement, error)
}

// SettlementSvcFacade combines all settlement-related service interfaces.
type SettlementSvcFacade interface {
	SettlementReaderSvc
	SettlementWriterSvc
}

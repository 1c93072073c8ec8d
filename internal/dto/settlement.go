package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// CreateSettlementRequest records a payment between two group members.
type CreateSettlementRequest struct {
	PayeeID    string          `json:"payeeID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Note       string          `json:"note"`
	ExpenseIDs []string        `json:"expenseIDs"` // Expenses this settlement covers, optional
	SettledAt  *time.Time      `json:"settledAt"`  // Defaults to now
}

// SettlementResponse defines the data returned for a settlement.
type SettlementResponse struct {
	SettlementID string          `json:"settlementID"`
	GroupID      string          `json:"groupID"`
	PayerID      string          `json:"payerID"`
	PayeeID      string          `json:"payeeID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Note         string          `json:"note"`
	SettledAt    time.Time       `json:"settledAt"`
	ExpenseIDs   []string        `json:"expenseIDs"`
}

// ToSettlementResponse converts a domain.Settlement to SettlementResponse DTO.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		SettlementID: s.SettlementID,
		GroupID:      s.GroupID,
		PayerID:      s.PayerID,
		PayeeID:      s.PayeeID,
		Amount:       s.Amount,
		CurrencyCode: s.CurrencyCode,
		Note:         s.Note,
		SettledAt:    s.SettledAt,
		ExpenseIDs:   s.ExpenseIDs,
	}
}

// ToListSettlementResponse converts a slice of domain.Settlement to DTOs.
func ToListSettlementResponse(settlements []domain.Settlement) []SettlementResponse {
	res := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		res[i] = ToSettlementResponse(&s)
	}
	return res
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement records a payment between two group members that reduces their
// outstanding mutual balance.
type Settlement struct {
	SettlementID string          `json:"settlementID"` // Primary Key (UUID)
	GroupID      string          `json:"groupID"`      // FK -> groups
	PayerID      string          `json:"payerID"`      // Debtor settling up
	PayeeID      string          `json:"payeeID"`      // Creditor being paid
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Note         string          `json:"note"`
	SettledAt    time.Time       `json:"settledAt"`
	ExpenseIDs   []string        `json:"expenseIDs"` // Expenses this settlement covers
	AuditFields
}

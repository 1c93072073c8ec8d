package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-user spending limit for one category in one calendar month.
type Budget struct {
	BudgetID     string          `json:"budgetID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`   // FK -> users
	Category     string          `json:"category"`
	CurrencyCode string          `json:"currencyCode"`
	Month        time.Time       `json:"month"` // First day of the month, UTC
	LimitAmount  decimal.Decimal `json:"limitAmount"`
	AuditFields
}

// BudgetStatus is a derived view of a budget against actual spend.
type BudgetStatus struct {
	Budget    Budget          `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`     // Transactions + expense shares in the month/category
	Remaining decimal.Decimal `json:"remaining"` // LimitAmount - Spent (negative when over)
	IsOver    bool            `json:"isOver"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a budget.
// Month is "YYYY-MM".
type CreateBudgetRequest struct {
	Category     string          `json:"category" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,len=3"`
	Month        string          `json:"month" binding:"required"`
	LimitAmount  decimal.Decimal `json:"limitAmount" binding:"required"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	LimitAmount *decimal.Decimal `json:"limitAmount"`
}

// BudgetResponse defines the data returned for a budget with its status.
type BudgetResponse struct {
	BudgetID     string          `json:"budgetID"`
	Category     string          `json:"category"`
	CurrencyCode string          `json:"currencyCode"`
	Month        string          `json:"month"` // "YYYY-MM"
	LimitAmount  decimal.Decimal `json:"limitAmount"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	IsOver       bool            `json:"isOver"`
}

// ListBudgetsParams defines query parameters for listing budgets.
type ListBudgetsParams struct {
	Month string `form:"month"` // "YYYY-MM", optional
}

// ToBudgetResponse converts a domain.BudgetStatus to BudgetResponse DTO.
func ToBudgetResponse(s *domain.BudgetStatus) BudgetResponse {
	return BudgetResponse{
		BudgetID:     s.Budget.BudgetID,
		Category:     s.Budget.Category,
		CurrencyCode: s.Budget.CurrencyCode,
		Month:        s.Budget.Month.Format("2006-01"),
		LimitAmount:  s.Budget.LimitAmount,
		Spent:        s.Spent,
		Remaining:    s.Remaining,
		IsOver:       s.IsOver,
	}
}

// ParseBudgetMonth parses "YYYY-MM" into the first day of the month, UTC.
func ParseBudgetMonth(month string) (time.Time, error) {
	return time.Parse("2006-01", month)
}

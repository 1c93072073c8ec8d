package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	"github.com/spliteasy/spliteasy/internal/core/splitting"
)

// CreateExpenseRequest defines the data needed to create a shared expense.
// ParticipantIDs is an ordered list; order is the tie-break sequence for
// remainder distribution.
type CreateExpenseRequest struct {
	Description       string                     `json:"description" binding:"required"`
	Category          string                     `json:"category"`
	Amount            decimal.Decimal            `json:"amount" binding:"required"`
	CurrencyCode      string                     `json:"currencyCode" binding:"omitempty,uppercase,len=3"` // Defaults to the group currency
	PaidBy            string                     `json:"paidBy" binding:"required"`
	ParticipantIDs    []string                   `json:"participantIDs" binding:"required,min=1"`
	SplitStrategy     domain.SplitStrategy       `json:"splitStrategy" binding:"required,oneof=EQUAL PERCENTAGE CUSTOM"`
	RoundingPolicy    domain.RoundingPolicy      `json:"roundingPolicy" binding:"omitempty,oneof=DISTRIBUTE LARGEST SMALLEST"`
	CustomAmounts     map[string]decimal.Decimal `json:"customAmounts"`
	CustomPercentages map[string]decimal.Decimal `json:"customPercentages"`
	ExpenseDate       *time.Time                 `json:"expenseDate"` // Defaults to now
}

// PreviewSplitRequest runs the split calculator without persisting anything.
type PreviewSplitRequest struct {
	Amount            decimal.Decimal            `json:"amount" binding:"required"`
	ParticipantIDs    []string                   `json:"participantIDs" binding:"required,min=1"`
	SplitStrategy     domain.SplitStrategy       `json:"splitStrategy" binding:"required,oneof=EQUAL PERCENTAGE CUSTOM"`
	RoundingPolicy    domain.RoundingPolicy      `json:"roundingPolicy" binding:"omitempty,oneof=DISTRIBUTE LARGEST SMALLEST"`
	CustomAmounts     map[string]decimal.Decimal `json:"customAmounts"`
	CustomPercentages map[string]decimal.Decimal `json:"customPercentages"`
	Precision         *int32                     `json:"precision" binding:"omitempty,gte=0,lte=8"` // Defaults to 2
}

// SplitResponse is one participant's share in a response payload.
type SplitResponse struct {
	ParticipantID string          `json:"participantID"`
	Amount        decimal.Decimal `json:"amount"`
	Percentage    decimal.Decimal `json:"percentage"`
	IsAdjusted    bool            `json:"isAdjusted"`
	Paid          bool            `json:"paid"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
}

// SplitSummaryResponse mirrors splitting.Summary for API consumers.
type SplitSummaryResponse struct {
	TotalSplit    decimal.Decimal `json:"totalSplit"`
	Difference    decimal.Decimal `json:"difference"`
	AdjustedCount int             `json:"adjustedCount"`
	IsBalanced    bool            `json:"isBalanced"`
}

// PreviewSplitResponse carries a computed (not persisted) split with its summary.
type PreviewSplitResponse struct {
	Splits  []SplitResponse      `json:"splits"`
	Summary SplitSummaryResponse `json:"summary"`
}

// ExpenseResponse defines the data returned for a shared expense.
type ExpenseResponse struct {
	ExpenseID      string                `json:"expenseID"`
	GroupID        string                `json:"groupID"`
	Description    string                `json:"description"`
	Category       string                `json:"category"`
	Amount         decimal.Decimal       `json:"amount"`
	CurrencyCode   string                `json:"currencyCode"`
	PaidBy         string                `json:"paidBy"`
	SplitStrategy  domain.SplitStrategy  `json:"splitStrategy"`
	RoundingPolicy domain.RoundingPolicy `json:"roundingPolicy"`
	ExpenseDate    time.Time             `json:"expenseDate"`
	Splits         []SplitResponse       `json:"splits"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ListExpensesParams defines query parameters for listing group expenses.
type ListExpensesParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,gte=1,lte=100"`
	NextToken string `form:"nextToken"`
}

// ListExpensesResponse wraps a page of expenses with the cursor for the next page.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken string            `json:"nextToken,omitempty"`
}

// ToSplitResponses converts persisted expense splits to DTOs.
func ToSplitResponses(splits []domain.ExpenseSplit, total decimal.Decimal) []SplitResponse {
	hundred := decimal.NewFromInt(100)
	res := make([]SplitResponse, len(splits))
	for i, s := range splits {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = s.Amount.Div(total).Mul(hundred)
		}
		res[i] = SplitResponse{
			ParticipantID: s.ParticipantID,
			Amount:        s.Amount,
			Percentage:    pct,
			IsAdjusted:    s.IsAdjusted,
			Paid:          s.Paid,
			PaidAt:        s.PaidAt,
		}
	}
	return res
}

// ToExpenseResponse converts a domain.SharedExpense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.SharedExpense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:      e.ExpenseID,
		GroupID:        e.GroupID,
		Description:    e.Description,
		Category:       e.Category,
		Amount:         e.Amount,
		CurrencyCode:   e.CurrencyCode,
		PaidBy:         e.PaidBy,
		SplitStrategy:  e.SplitStrategy,
		RoundingPolicy: e.RoundingPolicy,
		ExpenseDate:    e.ExpenseDate,
		Splits:         ToSplitResponses(e.Splits, e.Amount),
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ToPreviewSplitResponse converts calculator output to the preview DTO.
func ToPreviewSplitResponse(splits []splitting.Split, summary splitting.Summary) PreviewSplitResponse {
	res := PreviewSplitResponse{
		Splits: make([]SplitResponse, len(splits)),
		Summary: SplitSummaryResponse{
			TotalSplit:    summary.TotalSplit,
			Difference:    summary.Difference,
			AdjustedCount: summary.AdjustedCount,
			IsBalanced:    summary.IsBalanced,
		},
	}
	for i, s := range splits {
		res.Splits[i] = SplitResponse{
			ParticipantID: s.ParticipantID,
			Amount:        s.Amount,
			Percentage:    s.Percentage,
			IsAdjusted:    s.IsAdjusted,
		}
	}
	return res
}

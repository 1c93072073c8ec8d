package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitStrategy selects how an expense amount is partitioned among participants.
type SplitStrategy string

const (
	SplitEqual      SplitStrategy = "EQUAL"
	SplitPercentage SplitStrategy = "PERCENTAGE"
	SplitCustom     SplitStrategy = "CUSTOM"
)

// RoundingPolicy selects which participants absorb leftover smallest units
// when a split does not divide evenly.
type RoundingPolicy string

const (
	RoundDistribute RoundingPolicy = "DISTRIBUTE"
	RoundLargest    RoundingPolicy = "LARGEST"
	RoundSmallest   RoundingPolicy = "SMALLEST"
)

// SharedExpense represents an expense paid by one group member and split among several.
type SharedExpense struct {
	ExpenseID      string          `json:"expenseID"` // Primary Key (UUID)
	GroupID        string          `json:"groupID"`   // FK -> groups
	Description    string          `json:"description"`
	Category       string          `json:"category"` // Free-form category tag, feeds budgets
	Amount         decimal.Decimal `json:"amount"`   // Total expense amount, positive
	CurrencyCode   string          `json:"currencyCode"`
	PaidBy         string          `json:"paidBy"` // UserID of the payer
	SplitStrategy  SplitStrategy   `json:"splitStrategy"`
	RoundingPolicy RoundingPolicy  `json:"roundingPolicy"`
	ExpenseDate    time.Time       `json:"expenseDate"`
	Splits         []ExpenseSplit  `json:"splits"` // One per participant; deleted with the expense
	AuditFields
}

// ExpenseSplit is one participant's persisted share of a shared expense.
type ExpenseSplit struct {
	ExpenseID     string          `json:"expenseID"`
	ParticipantID string          `json:"participantID"` // UserID of the participant
	Amount        decimal.Decimal `json:"amount"`
	IsAdjusted    bool            `json:"isAdjusted"` // Absorbed rounding remainder
	Paid          bool            `json:"paid"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
}

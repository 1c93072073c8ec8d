package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction increases or decreases an account.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"  // Money leaving the account
	Credit TransactionType = "CREDIT" // Money entering the account
)

// Transaction represents a single personal-account movement.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	AccountID       string          `json:"accountID"`     // FK -> accounts
	UserID          string          `json:"userID"`        // FK -> users (owner, denormalized)
	Amount          decimal.Decimal `json:"amount"`        // Positive value
	TransactionType TransactionType `json:"transactionType"`
	Category        string          `json:"category"` // Feeds budget spend
	Notes           string          `json:"notes"`
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}

package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the kind of personal account.
type AccountType string

const (
	AccountCash       AccountType = "CASH"
	AccountBank       AccountType = "BANK"
	AccountCreditCard AccountType = "CREDIT_CARD"
	AccountInvestment AccountType = "INVESTMENT"
)

// Account represents a personal account owned by a single user.
type Account struct {
	AccountID    string          `json:"accountID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`    // FK -> users
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"` // Persisted running balance
	IsActive     bool            `json:"isActive"`
	AuditFields
}

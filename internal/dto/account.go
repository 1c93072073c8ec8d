package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a personal account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CASH BANK CREDIT_CARD INVESTMENT"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,uppercase,len=3"`
	OpeningBalance *decimal.Decimal   `json:"openingBalance"` // Defaults to zero
}

// UpdateAccountRequest defines the data allowed for updating an account.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string             `json:"accountID"`
	Name         string             `json:"name"`
	AccountType  domain.AccountType `json:"accountType"`
	CurrencyCode string             `json:"currencyCode"`
	Balance      decimal.Decimal    `json:"balance"`
	IsActive     bool               `json:"isActive"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// CreateTransactionRequest records a movement on an account.
type CreateTransactionRequest struct {
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Category        string                 `json:"category"`
	Notes           string                 `json:"notes"`
	TransactionDate *time.Time             `json:"transactionDate"` // Defaults to now
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Category        string                 `json:"category"`
	Notes           string                 `json:"notes"`
	TransactionDate time.Time              `json:"transactionDate"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,gte=1,lte=100"`
	NextToken string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		AccountType:  a.AccountType,
		CurrencyCode: a.CurrencyCode,
		Balance:      a.Balance,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		res[i] = ToAccountResponse(&a)
	}
	return res
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		AccountID:       t.AccountID,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		Category:        t.Category,
		Notes:           t.Notes,
		TransactionDate: t.TransactionDate,
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/dto"
	"github.com/spliteasy/spliteasy/internal/utils/pagination"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	currency    portssvc.CurrencyReaderSvc
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currency portssvc.CurrencyReaderSvc) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, currency: currency}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if _, err := s.currency.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown currency %s: %w", req.CurrencyCode, apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to validate account currency: %w", err)
	}

	balance := decimal.Zero
	if req.OpeningBalance != nil {
		balance = *req.OpeningBalance
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: req.CurrencyCode,
		Balance:      balance,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account")
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", "account_id", account.AccountID)
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", "account_id", accountID)
		}
		return nil, err
	}
	if account.UserID != requestingUserID {
		return nil, fmt.Errorf("account belongs to another user: %w", apperrors.ErrForbidden)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", "user_id", userID)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", "account_id", accountID)
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (s *accountService) CreateTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	account, err := s.GetAccountByID(ctx, accountID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("account is inactive: %w", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("transaction amount must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	txnDate := now
	if req.TransactionDate != nil {
		txnDate = *req.TransactionDate
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       accountID,
		UserID:          account.UserID,
		Amount:          req.Amount,
		TransactionType: req.TransactionType,
		Category:        req.Category,
		Notes:           req.Notes,
		TransactionDate: txnDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	newBalance := account.Balance.Add(req.Amount)
	if req.TransactionType == domain.Debit {
		newBalance = account.Balance.Sub(req.Amount)
	}

	if err := s.accountRepo.SaveTransaction(ctx, txn, newBalance); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", "account_id", accountID)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded", "transaction_id", txn.TransactionID, "account_id", accountID)
	return &txn, nil
}

func (s *accountService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams, requestingUserID string) ([]domain.Transaction, string, error) {
	if _, err := s.GetAccountByID(ctx, accountID, requestingUserID); err != nil {
		return nil, "", err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var afterDate, afterCreated *time.Time
	if params.NextToken != "" {
		d, c, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid pagination token: %w", apperrors.ErrValidation)
		}
		afterDate, afterCreated = &d, &c
	}

	txns, err := s.accountRepo.ListTransactionsByAccount(ctx, accountID, limit+1, afterDate, afterCreated)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", "account_id", accountID)
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}

	nextToken := ""
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		nextToken = pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
	}
	return txns, nextToken, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/core/splitting"
	"github.com/spliteasy/spliteasy/internal/dto"
	"github.com/spliteasy/spliteasy/internal/platform/cache"
)

// currencyService serves currency reads through a TTL cache. Currencies
// change rarely but their precision is consulted on every split.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	cache        *cache.Cache[domain.Currency]
}

// NewCurrencyService creates the currency service with a read-side cache.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, c *cache.Cache[domain.Currency]) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo, cache: c}
}

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	precision := splitting.DefaultPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", "currency_code", req.CurrencyCode)
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	s.cache.Set(currency.CurrencyCode, currency)
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	if cached, ok := s.cache.Get(currencyCode); ok {
		return &cached, nil
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find currency", "currency_code", currencyCode)
		}
		return nil, err
	}

	s.cache.Set(currencyCode, *currency)
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

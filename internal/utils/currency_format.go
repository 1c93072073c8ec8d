package utils

import (
	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency.
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(currency.Precision).StringFixed(currency.Precision)
}

// FormatWithPrecision formats an amount with the given precision.
// Round-trips split amounts unchanged: the calculator already produces values
// that are exact multiples of the smallest unit at this precision.
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.Round(precision).StringFixed(precision)
}

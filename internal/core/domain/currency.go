package domain

// Currency represents a supported currency in the domain.
// Precision is the number of decimal digits of the smallest representable unit
// (2 for USD cents, 0 for JPY) and drives split rounding.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int32  `json:"precision"`
	AuditFields
}

package splitting

import "github.com/shopspring/decimal"

// Validate reports whether the splits' amounts, reduced to smallest currency
// units at precision, sum to the given total within one smallest unit. The
// one-unit tolerance absorbs callers that rounded the input total themselves.
// It never mutates and never errors.
func Validate(splits []Split, total decimal.Decimal, precision int32) bool {
	var sum int64
	for _, s := range splits {
		sum += toUnits(s.Amount, precision)
	}
	diff := toUnits(total, precision) - sum
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// HasNegativeShare reports whether any split carries a negative amount.
// Negative shares can only arise from custom or percentage inputs that
// over-assign the total; callers that allow them simply skip this check.
func HasNegativeShare(splits []Split) bool {
	for _, s := range splits {
		if s.Amount.IsNegative() {
			return true
		}
	}
	return false
}

// Package splitting partitions monetary amounts among participants.
//
// All arithmetic happens in integer smallest-currency units (cents at
// precision 2), never in floats, so the per-participant amounts always sum
// back to the requested total exactly. Decimal values only appear at the
// package boundary.
package splitting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// DefaultPrecision is the number of decimal digits used when the caller does
// not specify one (two digits, i.e. cents).
const DefaultPrecision int32 = 2

// Participant identifies one party of a split. The caller owns the data; the
// calculator only reads it and treats the slice order as significant for
// rounding tie-breaks.
type Participant struct {
	ID    string
	Name  string
	Email string
}

// Options carries everything needed to compute a split.
type Options struct {
	// TotalAmount is the amount to partition. Must be positive.
	TotalAmount decimal.Decimal

	// Participants is the ordered list of parties. Order is the tie-break
	// sequence for remainder distribution and must not be empty.
	Participants []Participant

	// Strategy selects the partitioning scheme.
	Strategy domain.SplitStrategy

	// CustomAmounts holds per-participant amounts for SplitCustom.
	// Missing entries default to zero.
	CustomAmounts map[string]decimal.Decimal

	// CustomPercentages holds per-participant percentages (0-100) for
	// SplitPercentage. Missing entries default to zero contribution.
	CustomPercentages map[string]decimal.Decimal

	// Precision is the number of decimal digits to round shares to.
	// Must be >= 0.
	Precision int32

	// Rounding selects who absorbs leftover smallest units.
	// Empty defaults to RoundDistribute.
	Rounding domain.RoundingPolicy
}

// Split is one participant's computed share.
type Split struct {
	ParticipantID string          `json:"participantID"`
	Amount        decimal.Decimal `json:"amount"`     // Rounded to Options.Precision digits
	Percentage    decimal.Decimal `json:"percentage"` // Amount / total * 100, for display
	IsAdjusted    bool            `json:"isAdjusted"` // Absorbed part of the rounding remainder
}

// Calculate partitions opts.TotalAmount among opts.Participants.
//
// Whatever the strategy, the returned shares sum to the total exactly in
// smallest currency units: per-participant rounding drift, percentages that
// do not add up to 100 and custom amounts that do not add up to the total are
// all reconciled by remainder distribution rather than rejected. Only
// structurally invalid input (non-positive total, no participants, negative
// precision, unknown strategy or policy) is an error.
func Calculate(opts Options) ([]Split, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	rounding := opts.Rounding
	if rounding == "" {
		rounding = domain.RoundDistribute
	}

	totalUnits := toUnits(opts.TotalAmount, opts.Precision)
	n := len(opts.Participants)

	units := make([]int64, n)
	switch opts.Strategy {
	case domain.SplitEqual:
		// Floor per participant; the leftover goes through remainder
		// distribution below.
		base := totalUnits / int64(n)
		for i := range units {
			units[i] = base
		}
	case domain.SplitPercentage:
		hundred := decimal.NewFromInt(100)
		for i, p := range opts.Participants {
			pct, ok := opts.CustomPercentages[p.ID]
			if !ok {
				continue // no supplied percentage means no contribution
			}
			share := opts.TotalAmount.Mul(pct).Div(hundred)
			units[i] = toUnits(share, opts.Precision)
		}
	case domain.SplitCustom:
		for i, p := range opts.Participants {
			amt, ok := opts.CustomAmounts[p.ID]
			if !ok {
				continue
			}
			units[i] = toUnits(amt, opts.Precision)
		}
	}

	adjusted := distributeRemainder(units, totalUnits, rounding)

	splits := make([]Split, n)
	hundred := decimal.NewFromInt(100)
	for i, p := range opts.Participants {
		amount := fromUnits(units[i], opts.Precision)
		splits[i] = Split{
			ParticipantID: p.ID,
			Amount:        amount,
			Percentage:    amount.Div(opts.TotalAmount).Mul(hundred),
			IsAdjusted:    adjusted[i],
		}
	}
	return splits, nil
}

func validateOptions(opts Options) error {
	if !opts.TotalAmount.IsPositive() {
		return fmt.Errorf("total amount must be positive, got %s: %w", opts.TotalAmount, apperrors.ErrValidation)
	}
	if len(opts.Participants) == 0 {
		return fmt.Errorf("at least one participant is required: %w", apperrors.ErrValidation)
	}
	if opts.Precision < 0 {
		return fmt.Errorf("precision must be >= 0, got %d: %w", opts.Precision, apperrors.ErrValidation)
	}
	switch opts.Strategy {
	case domain.SplitEqual, domain.SplitPercentage, domain.SplitCustom:
	default:
		return fmt.Errorf("unknown split strategy %q: %w", opts.Strategy, apperrors.ErrValidation)
	}
	switch opts.Rounding {
	case "", domain.RoundDistribute, domain.RoundLargest, domain.RoundSmallest:
	default:
		return fmt.Errorf("unknown rounding policy %q: %w", opts.Rounding, apperrors.ErrValidation)
	}
	return nil
}

// distributeRemainder reconciles units against totalUnits by moving one
// smallest unit at a time according to the rounding policy. It mutates units
// in place and reports which entries were touched.
func distributeRemainder(units []int64, totalUnits int64, rounding domain.RoundingPolicy) []bool {
	n := len(units)
	adjusted := make([]bool, n)

	var sum int64
	for _, u := range units {
		sum += u
	}
	diff := totalUnits - sum
	if diff == 0 {
		return adjusted
	}

	step := int64(1)
	if diff < 0 {
		step = -1
	}

	switch rounding {
	case domain.RoundLargest, domain.RoundSmallest:
		for diff != 0 {
			i := pickByShare(units, rounding)
			units[i] += step
			adjusted[i] = true
			diff -= step
		}
	default: // RoundDistribute
		// Round-robin in participant order: no entry ends up more than one
		// unit of adjustment apart from any other.
		remaining := diff
		if remaining < 0 {
			remaining = -remaining
		}
		perEach := remaining / int64(n)
		extra := remaining % int64(n)
		for i := range units {
			d := perEach
			if int64(i) < extra {
				d++
			}
			if d == 0 {
				continue
			}
			units[i] += d * step
			adjusted[i] = true
		}
	}
	return adjusted
}

// pickByShare returns the index holding the currently largest (or smallest)
// share, breaking ties by original list order.
func pickByShare(units []int64, rounding domain.RoundingPolicy) int {
	best := 0
	for i := 1; i < len(units); i++ {
		if rounding == domain.RoundLargest && units[i] > units[best] {
			best = i
		}
		if rounding == domain.RoundSmallest && units[i] < units[best] {
			best = i
		}
	}
	return best
}

// toUnits rounds amount to precision digits and converts it to smallest
// currency units. Rounding is half away from zero, matching decimal.Round.
func toUnits(amount decimal.Decimal, precision int32) int64 {
	return amount.Round(precision).Shift(precision).IntPart()
}

// fromUnits converts smallest currency units back to a decimal amount.
func fromUnits(units int64, precision int32) decimal.Decimal {
	return decimal.New(units, -precision)
}

package splitting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	"github.com/spliteasy/spliteasy/internal/core/splitting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func participants(ids ...string) []splitting.Participant {
	ps := make([]splitting.Participant, len(ids))
	for i, id := range ids {
		ps[i] = splitting.Participant{ID: id, Name: id}
	}
	return ps
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sumAmounts(splits []splitting.Split) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}
	return sum
}

func amountOf(t *testing.T, splits []splitting.Split, id string) decimal.Decimal {
	t.Helper()
	for _, s := range splits {
		if s.ParticipantID == id {
			return s.Amount
		}
	}
	t.Fatalf("no split for participant %s", id)
	return decimal.Zero
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		opts splitting.Options
	}{
		{
			name: "zero total",
			opts: splitting.Options{
				TotalAmount:  decimal.Zero,
				Participants: participants("a"),
				Strategy:     domain.SplitEqual,
				Precision:    2,
			},
		},
		{
			name: "negative total",
			opts: splitting.Options{
				TotalAmount:  dec("-5"),
				Participants: participants("a"),
				Strategy:     domain.SplitEqual,
				Precision:    2,
			},
		},
		{
			name: "no participants",
			opts: splitting.Options{
				TotalAmount: dec("10"),
				Strategy:    domain.SplitEqual,
				Precision:   2,
			},
		},
		{
			name: "negative precision",
			opts: splitting.Options{
				TotalAmount:  dec("10"),
				Participants: participants("a"),
				Strategy:     domain.SplitEqual,
				Precision:    -1,
			},
		},
		{
			name: "unknown strategy",
			opts: splitting.Options{
				TotalAmount:  dec("10"),
				Participants: participants("a"),
				Strategy:     domain.SplitStrategy("HALVESIES"),
				Precision:    2,
			},
		},
		{
			name: "unknown rounding policy",
			opts: splitting.Options{
				TotalAmount:  dec("10"),
				Participants: participants("a"),
				Strategy:     domain.SplitEqual,
				Precision:    2,
				Rounding:     domain.RoundingPolicy("UPWARDS"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := splitting.Calculate(tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Nil(t, splits)
		})
	}
}

func TestCalculate_EqualTenAmongThree(t *testing.T) {
	splits, err := splitting.Calculate(splitting.Options{
		TotalAmount:  dec("10.00"),
		Participants: participants("a", "b", "c"),
		Strategy:     domain.SplitEqual,
		Precision:    2,
		Rounding:     domain.RoundDistribute,
	})
	require.NoError(t, err)
	require.Len(t, splits, 3)

	assert.True(t, sumAmounts(splits).Equal(dec("10.00")), "sum = %s", sumAmounts(splits))

	// One participant absorbs the extra cent; all shares within one cent of
	// each other.
	adjusted := 0
	for _, s := range splits {
		assert.True(t, s.Amount.Equal(dec("3.33")) || s.Amount.Equal(dec("3.34")), "share = %s", s.Amount)
		if s.IsAdjusted {
			adjusted++
		}
	}
	assert.Equal(t, 1, adjusted)
	assert.True(t, amountOf(t, splits, "a").Equal(dec("3.34")), "round-robin starts at list head")
}

func TestCalculate_EqualThreeCentsAmongTwo(t *testing.T) {
	for _, policy := range []domain.RoundingPolicy{domain.RoundDistribute, domain.RoundLargest, domain.RoundSmallest} {
		t.Run(string(policy), func(t *testing.T) {
			splits, err := splitting.Calculate(splitting.Options{
				TotalAmount:  dec("0.03"),
				Participants: participants("a", "b"),
				Strategy:     domain.SplitEqual,
				Precision:    2,
				Rounding:     policy,
			})
			require.NoError(t, err)
			assert.True(t, sumAmounts(splits).Equal(dec("0.03")))
			assert.False(t, splitting.HasNegativeShare(splits))
		})
	}
}

func TestCalculate_EqualHundredAmongSeven_DistributeSpreadsRemainder(t *testing.T) {
	splits, err := splitting.Calculate(splitting.Options{
		TotalAmount:  dec("100.00"),
		Participants: participants("p1", "p2", "p3", "p4", "p5", "p6", "p7"),
		Strategy:     domain.SplitEqual,
		Precision:    2,
		Rounding:     domain.RoundDistribute,
	})
	require.NoError(t, err)
	assert.True(t, sumAmounts(splits).Equal(dec("100.00")))

	// 100.00 / 7 floors to 14.28 each, leaving 4 cents: four distinct
	// participants get exactly one extra cent, never one participant all of
	// them.
	larger := 0
	for _, s := range splits {
		switch {
		case s.Amount.Equal(dec("14.29")):
			larger++
			assert.True(t, s.IsAdjusted)
		case s.Amount.Equal(dec("14.28")):
			assert.False(t, s.IsAdjusted)
		default:
			t.Fatalf("unexpected share %s", s.Amount)
		}
	}
	assert.Equal(t, 4, larger)
}

func TestCalculate_PercentageDriftCorrected(t *testing.T) {
	// 33.33 * 3 = 99.99%: the missing cent lands on exactly one participant.
	for _, policy := range []domain.RoundingPolicy{domain.RoundDistribute, domain.RoundLargest, domain.RoundSmallest} {
		t.Run(string(policy), func(t *testing.T) {
			splits, err := splitting.Calculate(splitting.Options{
				TotalAmount:  dec("100.00"),
				Participants: participants("a", "b", "c"),
				Strategy:     domain.SplitPercentage,
				CustomPercentages: map[string]decimal.Decimal{
					"a": dec("33.33"),
					"b": dec("33.33"),
					"c": dec("33.33"),
				},
				Precision: 2,
				Rounding:  policy,
			})
			require.NoError(t, err)
			assert.True(t, sumAmounts(splits).Equal(dec("100.00")), "sum = %s", sumAmounts(splits))

			adjusted := 0
			for _, s := range splits {
				if s.IsAdjusted {
					adjusted++
				}
			}
			assert.Equal(t, 1, adjusted)
		})
	}
}

func TestCalculate_PercentageMissingEntryContributesZero(t *testing.T) {
	splits, err := splitting.Calculate(splitting.Options{
		TotalAmount:  dec("80.00"),
		Participants: participants("a", "b"),
		Strategy:     domain.SplitPercentage,
		CustomPercentages: map[string]decimal.Decimal{
			"a": dec("100"),
		},
		Precision: 2,
	})
	require.NoError(t, err)
	assert.True(t, amountOf(t, splits, "a").Equal(dec("80.00")))
	assert.True(t, amountOf(t, splits, "b").IsZero())
	assert.True(t, sumAmounts(splits).Equal(dec("80.00")))
}

func TestCalculate_CustomOverassignedCorrected(t *testing.T) {
	base := splitting.Options{
		TotalAmount:  dec("50.00"),
		Participants: participants("small", "large"),
		Strategy:     domain.SplitCustom,
		CustomAmounts: map[string]decimal.Decimal{
			"small": dec("20.00"),
			"large": dec("30.01"),
		},
		Precision: 2,
	}

	t.Run("smallest policy reduces the smaller share", func(t *testing.T) {
		opts := base
		opts.Rounding = domain.RoundSmallest
		splits, err := splitting.Calculate(opts)
		require.NoError(t, err)
		assert.True(t, sumAmounts(splits).Equal(dec("50.00")))
		assert.True(t, amountOf(t, splits, "small").Equal(dec("19.99")))
		assert.True(t, amountOf(t, splits, "large").Equal(dec("30.01")))
	})

	t.Run("largest policy reduces the larger share", func(t *testing.T) {
		opts := base
		opts.Rounding = domain.RoundLargest
		splits, err := splitting.Calculate(opts)
		require.NoError(t, err)
		assert.True(t, sumAmounts(splits).Equal(dec("50.00")))
		assert.True(t, amountOf(t, splits, "small").Equal(dec("20.00")))
		assert.True(t, amountOf(t, splits, "large").Equal(dec("30.00")))
	})
}

func TestCalculate_CustomUnderassignedCorrected(t *testing.T) {
	splits, err := splitting.Calculate(splitting.Options{
		TotalAmount:  dec("50.00"),
		Participants: participants("a", "b"),
		Strategy:     domain.SplitCustom,
		CustomAmounts: map[string]decimal.Decimal{
			"a": dec("20.00"),
			"b": dec("29.00"),
		},
		Precision: 2,
		Rounding:  domain.RoundLargest,
	})
	require.NoError(t, err)
	assert.True(t, sumAmounts(splits).Equal(dec("50.00")))
	// The missing 1.00 piles onto the largest share one cent at a time.
	assert.True(t, amountOf(t, splits, "b").Equal(dec("30.00")))
	assert.True(t, amountOf(t, splits, "a").Equal(dec("20.00")))
}

func TestCalculate_PrecisionZero(t *testing.T) {
	// Whole-unit currency: 100 split three ways at precision 0.
	splits, err := splitting.Calculate(splitting.Options{
		TotalAmount:  dec("100"),
		Participants: participants("a", "b", "c"),
		Strategy:     domain.SplitEqual,
		Precision:    0,
		Rounding:     domain.RoundDistribute,
	})
	require.NoError(t, err)
	assert.True(t, sumAmounts(splits).Equal(dec("100")))
	assert.True(t, amountOf(t, splits, "a").Equal(dec("34")))
	assert.True(t, amountOf(t, splits, "b").Equal(dec("33")))
	assert.True(t, amountOf(t, splits, "c").Equal(dec("33")))
}

func TestCalculate_PercentageRecomputedForDisplay(t *testing.T) {
	splits, err := splitting.Calculate(splitting.Options{
		TotalAmount:  dec("10.00"),
		Participants: participants("a", "b", "c"),
		Strategy:     domain.SplitEqual,
		Precision:    2,
	})
	require.NoError(t, err)
	for _, s := range splits {
		want := s.Amount.Div(dec("10.00")).Mul(dec("100"))
		assert.True(t, s.Percentage.Equal(want), "pct = %s want %s", s.Percentage, want)
	}
}

func TestCalculate_SumInvariantHoldsAcrossInputs(t *testing.T) {
	totals := []string{"0.01", "0.99", "1.00", "7.77", "99.99", "123.45", "1000000.01"}
	counts := []int{1, 2, 3, 5, 7, 11}
	policies := []domain.RoundingPolicy{domain.RoundDistribute, domain.RoundLargest, domain.RoundSmallest}

	for _, total := range totals {
		for _, count := range counts {
			for _, policy := range policies {
				ids := make([]string, count)
				for i := range ids {
					ids[i] = string(rune('a' + i))
				}
				opts := splitting.Options{
					TotalAmount:  dec(total),
					Participants: participants(ids...),
					Strategy:     domain.SplitEqual,
					Precision:    2,
					Rounding:     policy,
				}
				splits, err := splitting.Calculate(opts)
				require.NoError(t, err)
				assert.True(t, sumAmounts(splits).Equal(dec(total)),
					"total=%s count=%d policy=%s sum=%s", total, count, policy, sumAmounts(splits))
				assert.True(t, splitting.Validate(splits, dec(total), 2))
				assert.False(t, splitting.HasNegativeShare(splits))
			}
		}
	}
}

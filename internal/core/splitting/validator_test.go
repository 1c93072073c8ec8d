package splitting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	"github.com/spliteasy/spliteasy/internal/core/splitting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		amounts   []string
		total     string
		precision int32
		want      bool
	}{
		{
			name:      "exact sum",
			amounts:   []string{"3.34", "3.33", "3.33"},
			total:     "10.00",
			precision: 2,
			want:      true,
		},
		{
			name:      "one smallest unit short is tolerated",
			amounts:   []string{"3.33", "3.33", "3.33"},
			total:     "10.00",
			precision: 2,
			want:      true,
		},
		{
			name:      "one smallest unit over is tolerated",
			amounts:   []string{"3.34", "3.34", "3.33"},
			total:     "10.00",
			precision: 2,
			want:      true,
		},
		{
			name:      "two smallest units off fails",
			amounts:   []string{"3.33", "3.33", "3.32"},
			total:     "10.00",
			precision: 2,
			want:      false,
		},
		{
			name:      "empty splits against nonzero total fails",
			amounts:   nil,
			total:     "5.00",
			precision: 2,
			want:      false,
		},
		{
			name:      "precision zero uses whole units",
			amounts:   []string{"34", "33", "33"},
			total:     "100",
			precision: 0,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits := make([]splitting.Split, len(tt.amounts))
			for i, a := range tt.amounts {
				splits[i] = splitting.Split{ParticipantID: "p", Amount: dec(a)}
			}
			got := splitting.Validate(splits, dec(tt.total), tt.precision)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_AcceptsCalculatorOutput(t *testing.T) {
	for _, strategy := range []domain.SplitStrategy{domain.SplitEqual, domain.SplitPercentage, domain.SplitCustom} {
		opts := splitting.Options{
			TotalAmount:  dec("73.21"),
			Participants: participants("a", "b", "c", "d"),
			Strategy:     strategy,
			CustomPercentages: map[string]decimal.Decimal{
				"a": dec("25"), "b": dec("25"), "c": dec("25"), "d": dec("25"),
			},
			CustomAmounts: map[string]decimal.Decimal{
				"a": dec("18.00"), "b": dec("18.00"), "c": dec("18.00"), "d": dec("18.00"),
			},
			Precision: 2,
		}
		splits, err := splitting.Calculate(opts)
		require.NoError(t, err)
		assert.True(t, splitting.Validate(splits, opts.TotalAmount, opts.Precision), "strategy %s", strategy)
	}
}

func TestHasNegativeShare(t *testing.T) {
	assert.False(t, splitting.HasNegativeShare([]splitting.Split{
		{Amount: dec("1.00")}, {Amount: decimal.Zero},
	}))
	assert.True(t, splitting.HasNegativeShare([]splitting.Split{
		{Amount: dec("1.00")}, {Amount: dec("-0.01")},
	}))
}

package splitting_test

import (
	"testing"

	"github.com/spliteasy/spliteasy/internal/core/domain"
	"github.com/spliteasy/spliteasy/internal/core/splitting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_BalancedResult(t *testing.T) {
	splits, err := splitting.Calculate(splitting.Options{
		TotalAmount:  dec("10.00"),
		Participants: participants("a", "b", "c"),
		Strategy:     domain.SplitEqual,
		Precision:    2,
	})
	require.NoError(t, err)

	sum := splitting.Summarize(splits, dec("10.00"))
	assert.True(t, sum.TotalSplit.Equal(dec("10.00")))
	assert.True(t, sum.Difference.IsZero())
	assert.Equal(t, 1, sum.AdjustedCount)
	assert.True(t, sum.IsBalanced)
}

func TestSummarize_UnbalancedResult(t *testing.T) {
	splits := []splitting.Split{
		{ParticipantID: "a", Amount: dec("3.00")},
		{ParticipantID: "b", Amount: dec("3.00"), IsAdjusted: true},
	}
	sum := splitting.Summarize(splits, dec("10.00"))
	assert.True(t, sum.TotalSplit.Equal(dec("6.00")))
	assert.True(t, sum.Difference.Equal(dec("4.00")))
	assert.Equal(t, 1, sum.AdjustedCount)
	assert.False(t, sum.IsBalanced)
}

func TestSummarize_Empty(t *testing.T) {
	sum := splitting.Summarize(nil, dec("1.00"))
	assert.True(t, sum.TotalSplit.IsZero())
	assert.True(t, sum.Difference.Equal(dec("1.00")))
	assert.Equal(t, 0, sum.AdjustedCount)
	assert.False(t, sum.IsBalanced)
}

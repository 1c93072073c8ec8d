package splitting

import "github.com/shopspring/decimal"

// Summary holds human-facing aggregate facts about a split result.
type Summary struct {
	TotalSplit    decimal.Decimal `json:"totalSplit"`    // Sum of all split amounts
	Difference    decimal.Decimal `json:"difference"`    // Requested total - TotalSplit
	AdjustedCount int             `json:"adjustedCount"` // Entries that absorbed rounding remainder
	IsBalanced    bool            `json:"isBalanced"`    // Difference == 0
}

// Summarize derives a Summary from a split result against the requested
// total. Pure and deterministic.
func Summarize(splits []Split, total decimal.Decimal) Summary {
	totalSplit := decimal.Zero
	adjusted := 0
	for _, s := range splits {
		totalSplit = totalSplit.Add(s.Amount)
		if s.IsAdjusted {
			adjusted++
		}
	}
	difference := total.Sub(totalSplit)
	return Summary{
		TotalSplit:    totalSplit,
		Difference:    difference,
		AdjustedCount: adjusted,
		IsBalanced:    difference.IsZero(),
	}
}

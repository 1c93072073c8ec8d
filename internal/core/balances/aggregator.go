// Package balances aggregates a user's shared-expense history into net
// balances per group and overall ("who owes whom").
//
// The package is pure: it consumes already-materialized records and performs
// no I/O. Input snapshots are not assumed to be transactionally consistent;
// malformed records are skipped rather than failing the whole aggregation.
package balances

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/apperrors"
)

// ShareRecord is one participant's share of a stored expense.
type ShareRecord struct {
	ParticipantID string
	Amount        decimal.Decimal
	Paid          bool
	PaidAt        *time.Time
}

// ExpenseRecord is the minimal projection of a stored shared expense needed
// for balance aggregation.
type ExpenseRecord struct {
	ExpenseID string
	GroupID   string
	GroupName string
	PaidBy    string
	Amount    decimal.Decimal
	Shares    []ShareRecord
}

// SettlementRecord is the minimal projection of a stored settlement.
type SettlementRecord struct {
	SettlementID string
	GroupID      string
	PayerID      string
	PayeeID      string
	Amount       decimal.Decimal
	SettledAt    time.Time
	ExpenseIDs   []string
}

// GroupBalance is the derived per-group position of one user.
// Net == TotalPaid - TotalOwed always; positive means the user is owed money.
type GroupBalance struct {
	GroupID   string          `json:"groupID"`
	GroupName string          `json:"groupName"`
	TotalOwed decimal.Decimal `json:"totalOwed"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	Net       decimal.Decimal `json:"net"`
}

// Result is the user's overall position across all groups.
type Result struct {
	TotalOwed  decimal.Decimal `json:"totalOwed"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	NetBalance decimal.Decimal `json:"netBalance"`
	Groups     []GroupBalance  `json:"groups"`
}

// ComputeUserBalance derives the user's paid/owed/net position per group and
// overall from expense and settlement records.
//
// Per expense: the user's own share counts toward owed; if the user paid the
// expense, its full amount counts toward paid. A settlement from payer to
// payee reduces the payer's outstanding owed and the payee's receivable
// (paid) in that group. Records missing a group or carrying a non-positive
// amount are skipped.
//
// When the user appears in no record at all it returns apperrors.ErrNoData,
// so callers can tell "no activity" apart from "perfectly settled".
func ComputeUserBalance(userID string, expenses []ExpenseRecord, settlements []SettlementRecord) (*Result, error) {
	groups := make(map[string]*GroupBalance)

	get := func(groupID, groupName string) *GroupBalance {
		g, ok := groups[groupID]
		if !ok {
			g = &GroupBalance{
				GroupID:   groupID,
				GroupName: groupName,
				TotalOwed: decimal.Zero,
				TotalPaid: decimal.Zero,
			}
			groups[groupID] = g
		}
		if g.GroupName == "" {
			g.GroupName = groupName
		}
		return g
	}

	for _, exp := range expenses {
		if exp.GroupID == "" || !exp.Amount.IsPositive() {
			continue // malformed, skip and keep aggregating
		}

		var share *ShareRecord
		for i := range exp.Shares {
			s := &exp.Shares[i]
			if s.ParticipantID == "" || s.Amount.IsNegative() {
				continue
			}
			if s.ParticipantID == userID {
				share = s
				break
			}
		}
		isPayer := exp.PaidBy == userID
		if share == nil && !isPayer {
			continue // expense does not involve this user
		}

		g := get(exp.GroupID, exp.GroupName)
		if isPayer {
			g.TotalPaid = g.TotalPaid.Add(exp.Amount)
		}
		if share != nil {
			g.TotalOwed = g.TotalOwed.Add(share.Amount)
		}
	}

	for _, st := range settlements {
		if st.GroupID == "" || !st.Amount.IsPositive() {
			continue
		}
		switch userID {
		case st.PayerID:
			g := get(st.GroupID, "")
			g.TotalOwed = g.TotalOwed.Sub(st.Amount)
		case st.PayeeID:
			g := get(st.GroupID, "")
			g.TotalPaid = g.TotalPaid.Sub(st.Amount)
		}
	}

	if len(groups) == 0 {
		return nil, apperrors.ErrNoData
	}

	result := &Result{
		TotalOwed:  decimal.Zero,
		TotalPaid:  decimal.Zero,
		NetBalance: decimal.Zero,
		Groups:     make([]GroupBalance, 0, len(groups)),
	}
	for _, g := range groups {
		g.Net = g.TotalPaid.Sub(g.TotalOwed)
		result.TotalOwed = result.TotalOwed.Add(g.TotalOwed)
		result.TotalPaid = result.TotalPaid.Add(g.TotalPaid)
		result.Groups = append(result.Groups, *g)
	}
	result.NetBalance = result.TotalPaid.Sub(result.TotalOwed)

	// Deterministic output regardless of input record order.
	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].GroupID < result.Groups[j].GroupID
	})
	return result, nil
}

package balances_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/balances"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// dinnerExpense: alice paid 60.00 for alice/bob/carol, 20.00 each.
func dinnerExpense() balances.ExpenseRecord {
	return balances.ExpenseRecord{
		ExpenseID: "e1",
		GroupID:   "g1",
		GroupName: "Trip",
		PaidBy:    "alice",
		Amount:    dec("60.00"),
		Shares: []balances.ShareRecord{
			{ParticipantID: "alice", Amount: dec("20.00")},
			{ParticipantID: "bob", Amount: dec("20.00")},
			{ParticipantID: "carol", Amount: dec("20.00")},
		},
	}
}

func TestComputeUserBalance_PayerPosition(t *testing.T) {
	res, err := balances.ComputeUserBalance("alice", []balances.ExpenseRecord{dinnerExpense()}, nil)
	require.NoError(t, err)

	assert.True(t, res.TotalPaid.Equal(dec("60.00")))
	assert.True(t, res.TotalOwed.Equal(dec("20.00")))
	assert.True(t, res.NetBalance.Equal(dec("40.00")), "alice is owed 40")

	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	assert.Equal(t, "g1", g.GroupID)
	assert.Equal(t, "Trip", g.GroupName)
	assert.True(t, g.Net.Equal(g.TotalPaid.Sub(g.TotalOwed)))
}

func TestComputeUserBalance_ParticipantPosition(t *testing.T) {
	res, err := balances.ComputeUserBalance("bob", []balances.ExpenseRecord{dinnerExpense()}, nil)
	require.NoError(t, err)

	assert.True(t, res.TotalPaid.IsZero())
	assert.True(t, res.TotalOwed.Equal(dec("20.00")))
	assert.True(t, res.NetBalance.Equal(dec("-20.00")), "bob owes 20")
}

func TestComputeUserBalance_SettlementAdjustsBothSides(t *testing.T) {
	expenses := []balances.ExpenseRecord{dinnerExpense()}
	settlements := []balances.SettlementRecord{
		{
			SettlementID: "s1",
			GroupID:      "g1",
			PayerID:      "bob",
			PayeeID:      "alice",
			Amount:       dec("20.00"),
			SettledAt:    time.Now(),
			ExpenseIDs:   []string{"e1"},
		},
	}

	// Bob settled in full: his outstanding owed drops to zero.
	bob, err := balances.ComputeUserBalance("bob", expenses, settlements)
	require.NoError(t, err)
	assert.True(t, bob.TotalOwed.IsZero())
	assert.True(t, bob.NetBalance.IsZero())

	// Alice's receivable shrinks by the settled amount.
	alice, err := balances.ComputeUserBalance("alice", expenses, settlements)
	require.NoError(t, err)
	assert.True(t, alice.TotalPaid.Equal(dec("40.00")))
	assert.True(t, alice.TotalOwed.Equal(dec("20.00")))
	assert.True(t, alice.NetBalance.Equal(dec("20.00")), "carol still owes alice 20")
}

func TestComputeUserBalance_NoDataIsDistinctFromZero(t *testing.T) {
	res, err := balances.ComputeUserBalance("dave", []balances.ExpenseRecord{dinnerExpense()}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoData)
	assert.Nil(t, res)

	res, err = balances.ComputeUserBalance("anyone", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoData)
	assert.Nil(t, res)
}

func TestComputeUserBalance_MalformedRecordsSkipped(t *testing.T) {
	expenses := []balances.ExpenseRecord{
		{
			// missing group id
			ExpenseID: "broken1",
			PaidBy:    "alice",
			Amount:    dec("99.00"),
		},
		{
			// non-positive amount
			ExpenseID: "broken2",
			GroupID:   "g1",
			PaidBy:    "alice",
			Amount:    decimal.Zero,
		},
		dinnerExpense(),
	}
	settlements := []balances.SettlementRecord{
		{SettlementID: "broken3", PayerID: "alice", PayeeID: "bob", Amount: dec("5.00")},   // no group
		{SettlementID: "broken4", GroupID: "g1", PayerID: "alice", PayeeID: "bob", Amount: dec("-5.00")}, // negative
	}

	res, err := balances.ComputeUserBalance("alice", expenses, settlements)
	require.NoError(t, err)
	assert.True(t, res.TotalPaid.Equal(dec("60.00")), "broken records must not leak into totals")
	assert.True(t, res.TotalOwed.Equal(dec("20.00")))
}

func TestComputeUserBalance_MultipleGroupsSortedAndSummed(t *testing.T) {
	expenses := []balances.ExpenseRecord{
		dinnerExpense(),
		{
			ExpenseID: "e2",
			GroupID:   "g0",
			GroupName: "Flat",
			PaidBy:    "bob",
			Amount:    dec("30.00"),
			Shares: []balances.ShareRecord{
				{ParticipantID: "alice", Amount: dec("15.00")},
				{ParticipantID: "bob", Amount: dec("15.00")},
			},
		},
	}

	res, err := balances.ComputeUserBalance("alice", expenses, nil)
	require.NoError(t, err)

	require.Len(t, res.Groups, 2)
	assert.Equal(t, "g0", res.Groups[0].GroupID, "groups sorted by id")
	assert.Equal(t, "g1", res.Groups[1].GroupID)

	assert.True(t, res.TotalPaid.Equal(dec("60.00")))
	assert.True(t, res.TotalOwed.Equal(dec("35.00")))
	assert.True(t, res.NetBalance.Equal(dec("25.00")))
}

func TestComputeUserBalance_OrderIndependent(t *testing.T) {
	expenses := []balances.ExpenseRecord{
		dinnerExpense(),
		{
			ExpenseID: "e2",
			GroupID:   "g1",
			GroupName: "Trip",
			PaidBy:    "bob",
			Amount:    dec("45.00"),
			Shares: []balances.ShareRecord{
				{ParticipantID: "alice", Amount: dec("15.00")},
				{ParticipantID: "bob", Amount: dec("15.00")},
				{ParticipantID: "carol", Amount: dec("15.00")},
			},
		},
	}
	settlements := []balances.SettlementRecord{
		{SettlementID: "s1", GroupID: "g1", PayerID: "alice", PayeeID: "bob", Amount: dec("15.00")},
		{SettlementID: "s2", GroupID: "g1", PayerID: "bob", PayeeID: "alice", Amount: dec("20.00")},
	}

	reference, err := balances.ComputeUserBalance("alice", expenses, settlements)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffledExp := append([]balances.ExpenseRecord(nil), expenses...)
		rng.Shuffle(len(shuffledExp), func(a, b int) { shuffledExp[a], shuffledExp[b] = shuffledExp[b], shuffledExp[a] })
		shuffledSet := append([]balances.SettlementRecord(nil), settlements...)
		rng.Shuffle(len(shuffledSet), func(a, b int) { shuffledSet[a], shuffledSet[b] = shuffledSet[b], shuffledSet[a] })

		got, err := balances.ComputeUserBalance("alice", shuffledExp, shuffledSet)
		require.NoError(t, err)
		assert.True(t, got.NetBalance.Equal(reference.NetBalance))
		assert.True(t, got.TotalPaid.Equal(reference.TotalPaid))
		assert.True(t, got.TotalOwed.Equal(reference.TotalOwed))
		require.Len(t, got.Groups, len(reference.Groups))
		for j := range got.Groups {
			assert.True(t, got.Groups[j].Net.Equal(reference.Groups[j].TotalPaid.Sub(reference.Groups[j].TotalOwed)))
		}
	}
}

package dto

import (
	"github.com/shopspring/decimal"
	"github.com/spliteasy/spliteasy/internal/core/balances"
)

// GroupBalanceResponse is one group's slice of the user's balance summary.
type GroupBalanceResponse struct {
	GroupID   string          `json:"groupID"`
	GroupName string          `json:"groupName"`
	TotalOwed decimal.Decimal `json:"totalOwed"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	Net       decimal.Decimal `json:"net"` // Positive: the user is owed money
}

// BalanceResponse is the user's overall balance summary.
type BalanceResponse struct {
	TotalOwed  decimal.Decimal        `json:"totalOwed"`
	TotalPaid  decimal.Decimal        `json:"totalPaid"`
	NetBalance decimal.Decimal        `json:"netBalance"`
	Groups     []GroupBalanceResponse `json:"groups"`
}

// ToBalanceResponse converts an aggregation result to the API DTO.
func ToBalanceResponse(r *balances.Result) BalanceResponse {
	res := BalanceResponse{
		TotalOwed:  r.TotalOwed,
		TotalPaid:  r.TotalPaid,
		NetBalance: r.NetBalance,
		Groups:     make([]GroupBalanceResponse, len(r.Groups)),
	}
	for i, g := range r.Groups {
		res.Groups[i] = GroupBalanceResponse{
			GroupID:   g.GroupID,
			GroupName: g.GroupName,
			TotalOwed: g.TotalOwed,
			TotalPaid: g.TotalPaid,
			Net:       g.Net,
		}
	}
	return res
}

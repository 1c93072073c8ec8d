package dto

import (
	"time"

	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// CreateGroupRequest defines the data needed to create a group.
type CreateGroupRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
}

// UpdateGroupRequest defines the data allowed for updating a group.
type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddMemberRequest adds a user to a group.
type AddMemberRequest struct {
	UserID string           `json:"userID" binding:"required"`
	Role   domain.GroupRole `json:"role" binding:"omitempty,oneof=ADMIN MEMBER"`
}

// GroupResponse defines the data returned for a group.
type GroupResponse struct {
	GroupID      string    `json:"groupID"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CurrencyCode string    `json:"currencyCode"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// GroupMemberResponse defines the data returned for a group member.
type GroupMemberResponse struct {
	UserID string           `json:"userID"`
	Role   domain.GroupRole `json:"role"`
}

// ToGroupResponse converts a domain.Group to GroupResponse DTO.
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:      g.GroupID,
		Name:         g.Name,
		Description:  g.Description,
		CurrencyCode: g.CurrencyCode,
		CreatedAt:    g.CreatedAt,
		CreatedBy:    g.CreatedBy,
	}
}

// ToListGroupResponse converts a slice of domain.Group to DTOs.
func ToListGroupResponse(groups []domain.Group) []GroupResponse {
	res := make([]GroupResponse, len(groups))
	for i, g := range groups {
		res[i] = ToGroupResponse(&g)
	}
	return res
}

// ToListGroupMemberResponse converts group members to DTOs.
func ToListGroupMemberResponse(members []domain.GroupMember) []GroupMemberResponse {
	res := make([]GroupMemberResponse, len(members))
	for i, m := range members {
		res[i] = GroupMemberResponse{UserID: m.UserID, Role: m.Role}
	}
	return res
}

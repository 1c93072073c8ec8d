package domain

// GroupRole defines a member's role within a group.
type GroupRole string

const (
	GroupRoleAdmin  GroupRole = "ADMIN"
	GroupRoleMember GroupRole = "MEMBER"
)

// Group represents a set of users who share expenses.
type Group struct {
	GroupID      string `json:"groupID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode"` // Default currency for the group's expenses
	AuditFields
}

// GroupMember links a user to a group with a role.
type GroupMember struct {
	GroupID string    `json:"groupID"`
	UserID  string    `json:"userID"`
	Role    GroupRole `json:"role"`
	AuditFields
}

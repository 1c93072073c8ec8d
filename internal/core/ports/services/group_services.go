package services

import (
	"context"

	"github.com/spliteasy/spliteasy/internal/core/domain"
	"github.com/spliteasy/spliteasy/internal/dto"
)

// GroupReaderSvc defines read operations for group data.
type GroupReaderSvc interface {
	// GetGroupByID retrieves a group; the requesting user must be a member.
	GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error)

	// ListGroups retrieves all groups the user belongs to.
	ListGroups(ctx context.Context, userID string) ([]domain.Group, error)

	// ListMembers retrieves a group's members; the requesting user must be a member.
	ListMembers(ctx context.Context, groupID string, requestingUserID string) ([]domain.GroupMember, error)
}

// GroupWriterSvc defines write operations for group data.
type GroupWriterSvc interface {
	// CreateGroup persists a new group with the creator as its first admin.
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error)

	// UpdateGroup updates group details; requires the ADMIN role.
	UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest, requestingUserID string) (*domain.Group, error)

	// AddMember adds a user to the group; requires the ADMIN role.
	AddMember(ctx context.Context, groupID string, req dto.AddMemberRequest, requestingUserID string) error

	// RemoveMember removes a user from the group; admins can remove anyone,
	// members can remove themselves.
	RemoveMember(ctx context.Context, groupID string, userID string, requestingUserID string) error
}

// GroupAuthorizerSvc answers membership questions for other services.
type GroupAuthorizerSvc interface {
	// AuthorizeMember returns the membership record, or
	// apperrors.ErrForbidden when the user is not a member.
	AuthorizeMember(ctx context.Context, groupID, userID string) (*domain.GroupMember, error)
}

// GroupSvcFacade combines all group-related service interfaces.
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupWriterSvc
	GroupAuthorizerSvc
}

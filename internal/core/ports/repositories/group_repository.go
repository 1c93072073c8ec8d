package repositories

import (
	"context"

	"github.com/spliteasy/spliteasy/internal/core/domain"
)

// GroupReader defines read operations for group data.
type GroupReader interface {
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)
	ListGroupsByUser(ctx context.Context, userID string) ([]domain.Group, error)
	ListMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error)
	// FindMember returns apperrors.ErrNotFound when the user is not a member.
	FindMember(ctx context.Context, groupID, userID string) (*domain.GroupMember, error)
}

// GroupWriter defines write operations for group data.
type GroupWriter interface {
	SaveGroup(ctx context.Context, group domain.Group, creatorMember domain.GroupMember) error
	UpdateGroup(ctx context.Context, group domain.Group) error
	AddMember(ctx context.Context, member domain.GroupMember) error
	RemoveMember(ctx context.Context, groupID, userID string) error
}

// GroupRepositoryFacade combines all group-related repository interfaces.
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}

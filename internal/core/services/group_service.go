package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	"github.com/spliteasy/spliteasy/internal/core/domain"
	portsrepo "github.com/spliteasy/spliteasy/internal/core/ports/repositories"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/dto"
)

type groupService struct {
	BaseService
	groupRepo    portsrepo.GroupRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewGroupService creates the group service.
func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.GroupSvcFacade {
	return &groupService{groupRepo: groupRepo, currencyRepo: currencyRepo}
}

// AuthorizeMember returns the caller's membership or ErrForbidden.
func (s *groupService) AuthorizeMember(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	member, err := s.groupRepo.FindMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user %s is not a member of group %s: %w", userID, groupID, apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to find group member", "group_id", groupID, "user_id", userID)
		return nil, fmt.Errorf("failed to check group membership: %w", err)
	}
	return member, nil
}

func (s *groupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error) {
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown currency %s: %w", req.CurrencyCode, apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to validate group currency: %w", err)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	group := domain.Group{
		GroupID:      uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		CurrencyCode: req.CurrencyCode,
		AuditFields:  audit,
	}
	creatorMember := domain.GroupMember{
		GroupID:     group.GroupID,
		UserID:      creatorUserID,
		Role:        domain.GroupRoleAdmin,
		AuditFields: audit,
	}

	if err := s.groupRepo.SaveGroup(ctx, group, creatorMember); err != nil {
		s.LogError(ctx, err, "Failed to save group")
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.LogInfo(ctx, "Group created", "group_id", group.GroupID)
	return &group, nil
}

func (s *groupService) GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error) {
	if _, err := s.AuthorizeMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find group", "group_id", groupID)
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) ListGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroupsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list groups", "user_id", userID)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if groups == nil {
		return []domain.Group{}, nil
	}
	return groups, nil
}

func (s *groupService) ListMembers(ctx context.Context, groupID string, requestingUserID string) ([]domain.GroupMember, error) {
	if _, err := s.AuthorizeMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}

	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list group members", "group_id", groupID)
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest, requestingUserID string) (*domain.Group, error) {
	member, err := s.AuthorizeMember(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if member.Role != domain.GroupRoleAdmin {
		return nil, fmt.Errorf("only group admins may update the group: %w", apperrors.ErrForbidden)
	}

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = requestingUserID

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		s.LogError(ctx, err, "Failed to update group", "group_id", groupID)
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return group, nil
}

func (s *groupService) AddMember(ctx context.Context, groupID string, req dto.AddMemberRequest, requestingUserID string) error {
	member, err := s.AuthorizeMember(ctx, groupID, requestingUserID)
	if err != nil {
		return err
	}
	if member.Role != domain.GroupRoleAdmin {
		return fmt.Errorf("only group admins may add members: %w", apperrors.ErrForbidden)
	}

	role := req.Role
	if role == "" {
		role = domain.GroupRoleMember
	}

	now := time.Now()
	newMember := domain.GroupMember{
		GroupID: groupID,
		UserID:  req.UserID,
		Role:    role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.groupRepo.AddMember(ctx, newMember); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("user is already a member: %w", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to add group member", "group_id", groupID)
		return fmt.Errorf("failed to add group member: %w", err)
	}

	s.LogInfo(ctx, "Member added to group", "group_id", groupID, "member_id", req.UserID)
	return nil
}

func (s *groupService) RemoveMember(ctx context.Context, groupID string, userID string, requestingUserID string) error {
	member, err := s.AuthorizeMember(ctx, groupID, requestingUserID)
	if err != nil {
		return err
	}
	// Admins can remove anyone; members can only leave.
	if member.Role != domain.GroupRoleAdmin && userID != requestingUserID {
		return fmt.Errorf("only group admins may remove other members: %w", apperrors.ErrForbidden)
	}

	if _, err := s.groupRepo.FindMember(ctx, groupID, userID); err != nil {
		return err
	}

	if err := s.groupRepo.RemoveMember(ctx, groupID, userID); err != nil {
		s.LogError(ctx, err, "Failed to remove group member", "group_id", groupID, "member_id", userID)
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return nil
}

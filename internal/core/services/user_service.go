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
	"github.com/spliteasy/spliteasy/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", "user_id", userID)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by email")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	_, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:       newUserID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", "user_id", user.UserID)
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, fmt.Errorf("users may only update themselves: %w", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", "user_id", userID)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateRefreshTokenHash(ctx context.Context, userID string, hash string) error {
	if err := s.userRepo.UpdateRefreshTokenHash(ctx, userID, &hash); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token hash", "user_id", userID)
		return fmt.Errorf("failed to store refresh token hash: %w", err)
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshTokenHash(ctx, userID, nil); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", "user_id", userID)
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so callers cannot probe for accounts.
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to find user during authentication")
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderID(ctx, domain.ProviderGoogle, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up Google user")
		return nil, fmt.Errorf("failed to resolve google user: %w", err)
	}

	// Link to an existing local account that shares the verified email.
	if info.VerifiedEmail {
		existing, err := s.userRepo.FindUserByEmail(ctx, info.Email)
		if err == nil {
			existing.ProviderUserID = info.ID
			existing.LastUpdatedAt = time.Now()
			existing.LastUpdatedBy = existing.UserID
			if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
				s.LogError(ctx, err, "Failed to link Google identity", "user_id", existing.UserID)
				return nil, fmt.Errorf("failed to link google identity: %w", err)
			}
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve google user: %w", err)
		}
	}

	now := time.Now()
	newUserID := uuid.NewString()
	newUser := domain.User{
		UserID:         newUserID,
		Name:           info.Name,
		Email:          info.Email,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: info.ID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to create Google user")
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	s.LogInfo(ctx, "Google user created", "user_id", newUser.UserID)
	return &newUser, nil
}

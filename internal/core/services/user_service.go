package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
	"github.com/tourdetaxa/bogfoering-backend/internal/utils"
)

type UserService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

func NewUserService(userRepo portsrepo.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

func (s *UserService) CreateUser(ctx context.Context, actor domain.User, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.RequireSuperbruger(ctx, actor); err != nil {
		return nil, err
	}

	role := domain.Role(req.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, apperrors.ErrValidation)
	}
	if role == domain.RoleAfdeling {
		if req.AfdelingNavn == nil || *req.AfdelingNavn == "" {
			return nil, fmt.Errorf("afdeling_navn is required for afdeling users: %w", apperrors.ErrValidation)
		}
	} else if req.AfdelingNavn != nil {
		return nil, fmt.Errorf("afdeling_navn is only valid for afdeling users: %w", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		AfdelingNavn: req.AfdelingNavn,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("username %q is taken: %w", req.Username, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "failed to create user", "username", req.Username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "user created", "user_id", user.UserID, "role", string(user.Role))
	return &user, nil
}

func (s *UserService) ListUsers(ctx context.Context, actor domain.User) ([]domain.User, error) {
	if err := s.RequireAdminLike(ctx, actor); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor domain.User, userID string) error {
	if err := s.RequireSuperbruger(ctx, actor); err != nil {
		return err
	}
	if actor.UserID == userID {
		return fmt.Errorf("cannot delete own account: %w", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), actor.UserID); err != nil {
		s.LogError(ctx, err, "failed to delete user", "user_id", userID)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "user deleted", "user_id", userID)
	return nil
}

func (s *UserService) UpdatePassword(ctx context.Context, actor domain.User, userID string, newPassword string) error {
	if err := s.RequireSuperbruger(ctx, actor); err != nil {
		return err
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash, actor.UserID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to update password", "user_id", userID)
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.LogInfo(ctx, "password updated", "user_id", userID)
	return nil
}

func (s *UserService) UpdateAfdelingNavn(ctx context.Context, actor domain.User, userID string, navn string) error {
	if err := s.RequireSuperbruger(ctx, actor); err != nil {
		return err
	}
	target, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.Role != domain.RoleAfdeling {
		return fmt.Errorf("user %s is not an afdeling user: %w", userID, apperrors.ErrValidation)
	}
	if err := s.userRepo.UpdateAfdelingNavn(ctx, userID, navn, actor.UserID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to rename afdeling", "user_id", userID)
		return fmt.Errorf("failed to rename afdeling: %w", err)
	}
	s.LogInfo(ctx, "afdeling renamed", "user_id", userID, "navn", navn)
	return nil
}

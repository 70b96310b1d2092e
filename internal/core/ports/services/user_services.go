package services

import (
	"context"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

// UserSvcFacade exposes user management and lookup operations.
// Mutating operations require the acting user and enforce role checks.
type UserSvcFacade interface {
	// CreateUser registers a new user; superbruger only.
	CreateUser(ctx context.Context, actor domain.User, req dto.CreateUserRequest) (*domain.User, error)
	// ListUsers returns all live users; admin and superbruger only.
	ListUsers(ctx context.Context, actor domain.User) ([]domain.User, error)
	// GetUserByID resolves a user without role gating; used to materialize the
	// authenticated identity from a token subject.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// GetUserByUsername resolves a user for credential verification at login.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// DeleteUser soft-deletes a user; superbruger only.
	DeleteUser(ctx context.Context, actor domain.User, userID string) error
	// UpdatePassword replaces a user's password; superbruger only.
	UpdatePassword(ctx context.Context, actor domain.User, userID string, newPassword string) error
	// UpdateAfdelingNavn renames the department an afdeling user belongs to;
	// superbruger only, and the target must hold the afdeling role.
	UpdateAfdelingNavn(ctx context.Context, actor domain.User, userID string, navn string) error
}

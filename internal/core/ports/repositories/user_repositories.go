package repositories

import (
	"context"
	"time"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUsers(ctx context.Context) ([]domain.User, error)
	// FindUsersByRole lists users holding the given role, ordered by afdeling_navn.
	FindUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	// FindUserByAfdelingNavn returns any live user referencing the given department
	// name, or apperrors.ErrNotFound. Used by the department delete safety check.
	FindUserByAfdelingNavn(ctx context.Context, navn string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, updatedBy string, updatedAt time.Time) error
	UpdateAfdelingNavn(ctx context.Context, userID string, navn string, updatedBy string, updatedAt time.Time) error
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

package services

import (
	"context"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// AfdelingSvcFacade exposes department management operations.
type AfdelingSvcFacade interface {
	// CreateAfdeling creates a department; superbruger only. Duplicate names
	// are rejected with apperrors.ErrDuplicate.
	CreateAfdeling(ctx context.Context, actor domain.User, navn string) (*domain.Afdeling, error)
	// ListAfdelinger returns all departments sorted by navn; admin and superbruger.
	ListAfdelinger(ctx context.Context, actor domain.User) ([]domain.Afdeling, error)
	// DeleteAfdeling removes a department; superbruger only. Deletion is
	// refused while any user still references this department's name.
	DeleteAfdeling(ctx context.Context, actor domain.User, afdelingID string) error
}

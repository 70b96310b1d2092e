package repositories

import (
	"context"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// AfdelingRepository defines persistence operations for departments.
type AfdelingRepository interface {
	SaveAfdeling(ctx context.Context, afdeling domain.Afdeling) error
	FindAfdelingByID(ctx context.Context, afdelingID string) (*domain.Afdeling, error)
	FindAfdelingByNavn(ctx context.Context, navn string) (*domain.Afdeling, error)
	// ListAfdelinger returns all departments ordered by navn ascending.
	ListAfdelinger(ctx context.Context) ([]domain.Afdeling, error)
	DeleteAfdeling(ctx context.Context, afdelingID string) error
}

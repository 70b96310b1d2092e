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
)

type AfdelingService struct {
	BaseService
	afdelingRepo portsrepo.AfdelingRepository
	userRepo     portsrepo.UserRepository
}

func NewAfdelingService(afdelingRepo portsrepo.AfdelingRepository, userRepo portsrepo.UserRepository) *AfdelingService {
	return &AfdelingService{afdelingRepo: afdelingRepo, userRepo: userRepo}
}

var _ portssvc.AfdelingSvcFacade = (*AfdelingService)(nil)

func (s *AfdelingService) CreateAfdeling(ctx context.Context, actor domain.User, navn string) (*domain.Afdeling, error) {
	if err := s.RequireSuperbruger(ctx, actor); err != nil {
		return nil, err
	}
	if navn == "" {
		return nil, fmt.Errorf("navn is required: %w", apperrors.ErrValidation)
	}
	if _, err := s.afdelingRepo.FindAfdelingByNavn(ctx, navn); err == nil {
		return nil, fmt.Errorf("afdeling %q already exists: %w", navn, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to check afdeling navn", "navn", navn)
		return nil, fmt.Errorf("failed to check afdeling navn: %w", err)
	}

	afdeling := domain.Afdeling{
		AfdelingID: uuid.NewString(),
		Navn:       navn,
		Oprettet:   time.Now(),
	}
	if err := s.afdelingRepo.SaveAfdeling(ctx, afdeling); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("afdeling %q already exists: %w", navn, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "failed to create afdeling", "navn", navn)
		return nil, fmt.Errorf("failed to create afdeling: %w", err)
	}

	s.LogInfo(ctx, "afdeling created", "afdeling_id", afdeling.AfdelingID, "navn", navn)
	return &afdeling, nil
}

func (s *AfdelingService) ListAfdelinger(ctx context.Context, actor domain.User) ([]domain.Afdeling, error) {
	if err := s.RequireAdminLike(ctx, actor); err != nil {
		return nil, err
	}
	afdelinger, err := s.afdelingRepo.ListAfdelinger(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list afdelinger")
		return nil, fmt.Errorf("failed to list afdelinger: %w", err)
	}
	return afdelinger, nil
}

// DeleteAfdeling removes a department. It refuses while any live user still
// references this department's name, so bookkeeping data cannot be orphaned.
func (s *AfdelingService) DeleteAfdeling(ctx context.Context, actor domain.User, afdelingID string) error {
	if err := s.RequireSuperbruger(ctx, actor); err != nil {
		return err
	}
	afdeling, err := s.afdelingRepo.FindAfdelingByID(ctx, afdelingID)
	if err != nil {
		return err
	}

	inUse, err := s.userRepo.FindUserByAfdelingNavn(ctx, afdeling.Navn)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to check afdeling usage", "navn", afdeling.Navn)
		return fmt.Errorf("failed to check afdeling usage: %w", err)
	}
	if inUse != nil {
		return fmt.Errorf("afdeling %q is still assigned to user %q: %w", afdeling.Navn, inUse.Username, apperrors.ErrValidation)
	}

	if err := s.afdelingRepo.DeleteAfdeling(ctx, afdelingID); err != nil {
		s.LogError(ctx, err, "failed to delete afdeling", "afdeling_id", afdelingID)
		return fmt.Errorf("failed to delete afdeling: %w", err)
	}
	s.LogInfo(ctx, "afdeling deleted", "afdeling_id", afdelingID, "navn", afdeling.Navn)
	return nil
}

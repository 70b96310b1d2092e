package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

type SettingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
	userRepo     portsrepo.UserRepository
}

func NewSettingsService(settingsRepo portsrepo.SettingsRepository, userRepo portsrepo.UserRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, userRepo: userRepo}
}

var _ portssvc.SettingsSvcFacade = (*SettingsService)(nil)

func (s *SettingsService) GetOwnSettings(ctx context.Context, actor domain.User) (*domain.Settings, error) {
	if actor.Role != domain.RoleAfdeling {
		return nil, apperrors.ErrForbidden
	}
	settings, err := s.settingsRepo.EnsureSettings(ctx, actor.UserID, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "failed to load settings", "afdeling_id", actor.UserID)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsService) UpdateOwnSettings(ctx context.Context, actor domain.User, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	if actor.Role != domain.RoleAfdeling {
		return nil, apperrors.ErrForbidden
	}
	return s.applyUpdate(ctx, actor, actor.UserID, req)
}

func (s *SettingsService) UpdateSettingsForAfdeling(ctx context.Context, actor domain.User, afdelingID string, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	if err := s.RequireAdminLike(ctx, actor); err != nil {
		return nil, err
	}
	target, err := s.userRepo.FindUserByID(ctx, afdelingID)
	if err != nil {
		return nil, err
	}
	if target.Role != domain.RoleAfdeling {
		return nil, fmt.Errorf("user %s is not an afdeling user: %w", afdelingID, apperrors.ErrValidation)
	}
	return s.applyUpdate(ctx, actor, afdelingID, req)
}

// applyUpdate merges the non-nil request fields into the current settings row.
// The voucher counter is never part of the merge.
func (s *SettingsService) applyUpdate(ctx context.Context, actor domain.User, afdelingID string, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	settings, err := s.settingsRepo.EnsureSettings(ctx, afdelingID, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "failed to load settings", "afdeling_id", afdelingID)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if req.Startsaldo != nil {
		settings.Startsaldo = *req.Startsaldo
	}
	if req.PeriodeStart != nil {
		settings.PeriodeStart = *req.PeriodeStart
	}
	if req.PeriodeSlut != nil {
		settings.PeriodeSlut = *req.PeriodeSlut
	}
	if req.Regnskabsaar != nil {
		if *req.Regnskabsaar == "" {
			return nil, fmt.Errorf("regnskabsaar cannot be empty: %w", apperrors.ErrValidation)
		}
		settings.Regnskabsaar = *req.Regnskabsaar
	}
	settings.LastUpdatedAt = time.Now()
	settings.LastUpdatedBy = actor.UserID

	if err := s.settingsRepo.UpdateSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "failed to update settings", "afdeling_id", afdelingID)
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	s.LogInfo(ctx, "settings updated", "afdeling_id", afdelingID)
	return settings, nil
}

// ListAllSettings returns every afdeling user's settings, materializing
// defaults for departments that never loaded theirs.
func (s *SettingsService) ListAllSettings(ctx context.Context, actor domain.User) ([]domain.AfdelingSettings, error) {
	if err := s.RequireAdminLike(ctx, actor); err != nil {
		return nil, err
	}
	afdelingUsers, err := s.userRepo.FindUsersByRole(ctx, domain.RoleAfdeling)
	if err != nil {
		s.LogError(ctx, err, "failed to list afdeling users")
		return nil, fmt.Errorf("failed to list afdeling users: %w", err)
	}

	result := make([]domain.AfdelingSettings, 0, len(afdelingUsers))
	for _, u := range afdelingUsers {
		settings, err := s.settingsRepo.EnsureSettings(ctx, u.UserID, actor.UserID)
		if err != nil {
			s.LogError(ctx, err, "failed to load settings", "afdeling_id", u.UserID)
			return nil, fmt.Errorf("failed to load settings for afdeling %s: %w", u.UserID, err)
		}
		navn := u.Username
		if u.AfdelingNavn != nil {
			navn = *u.AfdelingNavn
		}
		result = append(result, domain.AfdelingSettings{
			AfdelingID:   u.UserID,
			AfdelingNavn: navn,
			Settings:     *settings,
		})
	}
	return result, nil
}

func (s *SettingsService) ListRegnskabsaar(ctx context.Context, actor domain.User) ([]string, error) {
	if err := s.RequireAdminLike(ctx, actor); err != nil {
		return nil, err
	}
	labels, err := s.settingsRepo.ListRegnskabsaar(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list regnskabsaar")
		return nil, fmt.Errorf("failed to list regnskabsaar: %w", err)
	}
	return labels, nil
}

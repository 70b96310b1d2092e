package services

import (
	"context"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

// SettingsSvcFacade exposes department settings operations.
type SettingsSvcFacade interface {
	// GetOwnSettings returns the acting department's settings, materializing
	// defaults on first access; afdeling role only.
	GetOwnSettings(ctx context.Context, actor domain.User) (*domain.Settings, error)
	// UpdateOwnSettings merges a partial update into the acting department's
	// settings; afdeling role only. The voucher counter is untouched.
	UpdateOwnSettings(ctx context.Context, actor domain.User, req dto.UpdateSettingsRequest) (*domain.Settings, error)
	// UpdateSettingsForAfdeling merges a partial update into any department's
	// settings; admin and superbruger.
	UpdateSettingsForAfdeling(ctx context.Context, actor domain.User, afdelingID string, req dto.UpdateSettingsRequest) (*domain.Settings, error)
	// ListAllSettings returns every afdeling user's settings, lazily
	// materialized; admin and superbruger.
	ListAllSettings(ctx context.Context, actor domain.User) ([]domain.AfdelingSettings, error)
	// ListRegnskabsaar returns the distinct accounting-year labels, descending;
	// admin and superbruger.
	ListRegnskabsaar(ctx context.Context, actor domain.User) ([]string, error)
}

package repositories

import (
	"context"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// SettingsRepository defines persistence operations for department settings.
type SettingsRepository interface {
	// EnsureSettings returns the settings row for the department, creating it
	// with defaults if absent (lazy materialization on first access).
	EnsureSettings(ctx context.Context, afdelingID string, actorUserID string) (*domain.Settings, error)
	FindSettingsByAfdelingID(ctx context.Context, afdelingID string) (*domain.Settings, error)
	// UpdateSettings persists the mutable settings fields. The voucher counter
	// is deliberately not written here; only
	// TransactionRepository.CreateWithBilagnr advances it.
	UpdateSettings(ctx context.Context, settings domain.Settings) error
	// ListRegnskabsaar returns the distinct accounting-year labels in use,
	// descending, for historical filtering.
	ListRegnskabsaar(ctx context.Context) ([]string, error)
}

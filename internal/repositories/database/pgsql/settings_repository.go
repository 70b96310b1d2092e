package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	"github.com/tourdetaxa/bogfoering-backend/internal/models"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(db *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

func toDomainSettings(m models.Settings) domain.Settings {
	return domain.Settings{
		SettingsID:    m.SettingsID,
		AfdelingID:    m.AfdelingID,
		Startsaldo:    m.Startsaldo,
		PeriodeStart:  m.PeriodeStart,
		PeriodeSlut:   m.PeriodeSlut,
		Regnskabsaar:  m.Regnskabsaar,
		NaesteBilagnr: m.NaesteBilagnr,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const settingsColumns = `settings_id, afdeling_id, startsaldo, periode_start, periode_slut, regnskabsaar, naeste_bilagnr, created_at, created_by, last_updated_at, last_updated_by`

func scanSettings(row pgx.Row) (*models.Settings, error) {
	var m models.Settings
	err := row.Scan(
		&m.SettingsID,
		&m.AfdelingID,
		&m.Startsaldo,
		&m.PeriodeStart,
		&m.PeriodeSlut,
		&m.Regnskabsaar,
		&m.NaesteBilagnr,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// EnsureSettings inserts the default settings row for the department if none
// exists, then returns the current row. The insert is a no-op on conflict so
// concurrent first accesses converge on a single row.
func (r *PgxSettingsRepository) EnsureSettings(ctx context.Context, afdelingID string, actorUserID string) (*domain.Settings, error) {
	defaults := domain.DefaultSettings(afdelingID)
	now := time.Now()
	insert := `
        INSERT INTO settings (settings_id, afdeling_id, startsaldo, periode_start, periode_slut, regnskabsaar, naeste_bilagnr, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $8, $9)
        ON CONFLICT (afdeling_id) DO NOTHING;
    `
	_, err := r.Pool.Exec(ctx, insert,
		uuid.NewString(),
		afdelingID,
		defaults.Startsaldo,
		defaults.PeriodeStart,
		defaults.PeriodeSlut,
		defaults.Regnskabsaar,
		defaults.NaesteBilagnr,
		now,
		actorUserID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure settings: %w", err)
	}
	return r.FindSettingsByAfdelingID(ctx, afdelingID)
}

func (r *PgxSettingsRepository) FindSettingsByAfdelingID(ctx context.Context, afdelingID string) (*domain.Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE afdeling_id = $1;`
	m, err := scanSettings(r.Pool.QueryRow(ctx, query, afdelingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for afdeling %s: %w", afdelingID, err)
	}
	s := toDomainSettings(*m)
	return &s, nil
}

// UpdateSettings writes the mutable fields. naeste_bilagnr is deliberately not
// part of the statement; only the voucher allocation advances it.
func (r *PgxSettingsRepository) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	query := `
        UPDATE settings
        SET startsaldo = $1, periode_start = $2, periode_slut = $3, regnskabsaar = $4, last_updated_at = $5, last_updated_by = $6
        WHERE afdeling_id = $7;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		settings.Startsaldo,
		settings.PeriodeStart,
		settings.PeriodeSlut,
		settings.Regnskabsaar,
		settings.LastUpdatedAt,
		settings.LastUpdatedBy,
		settings.AfdelingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("settings not found for afdeling %s: %w", settings.AfdelingID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxSettingsRepository) ListRegnskabsaar(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT regnskabsaar FROM settings ORDER BY regnskabsaar DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query regnskabsaar labels: %w", err)
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan regnskabsaar row: %w", err)
		}
		if label != "" {
			labels = append(labels, label)
		}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating regnskabsaar rows: %w", rows.Err())
	}
	return labels, nil
}

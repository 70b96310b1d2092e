package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	"github.com/tourdetaxa/bogfoering-backend/internal/models"
)

type PgxDriveCredentialRepository struct {
	BaseRepository
}

func newPgxDriveCredentialRepository(db *pgxpool.Pool) portsrepo.DriveCredentialRepository {
	return &PgxDriveCredentialRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.DriveCredentialRepository = (*PgxDriveCredentialRepository)(nil)

func toDomainDriveCredential(m models.DriveCredential) domain.DriveCredential {
	return domain.DriveCredential{
		UserID:       m.UserID,
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
		TokenType:    m.TokenType,
		Expiry:       m.Expiry,
		Scopes:       m.Scopes,
		ConnectedAt:  m.ConnectedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UpsertCredential stores the credential for the user, replacing any previous
// one. The refresh token is kept from the existing row when the new grant did
// not include one; Google only returns it on the first consent.
func (r *PgxDriveCredentialRepository) UpsertCredential(ctx context.Context, cred domain.DriveCredential) error {
	query := `
        INSERT INTO drive_credentials (user_id, access_token, refresh_token, token_type, expiry, scopes, connected_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (user_id) DO UPDATE SET
            access_token = EXCLUDED.access_token,
            refresh_token = CASE WHEN EXCLUDED.refresh_token = '' THEN drive_credentials.refresh_token ELSE EXCLUDED.refresh_token END,
            token_type = EXCLUDED.token_type,
            expiry = EXCLUDED.expiry,
            scopes = EXCLUDED.scopes,
            updated_at = EXCLUDED.updated_at;
    `
	_, err := r.Pool.Exec(ctx, query,
		cred.UserID,
		cred.AccessToken,
		cred.RefreshToken,
		cred.TokenType,
		cred.Expiry,
		cred.Scopes,
		cred.ConnectedAt,
		cred.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert drive credential: %w", err)
	}
	return nil
}

func (r *PgxDriveCredentialRepository) FindCredentialByUserID(ctx context.Context, userID string) (*domain.DriveCredential, error) {
	query := `
        SELECT user_id, access_token, refresh_token, token_type, expiry, scopes, connected_at, updated_at
        FROM drive_credentials WHERE user_id = $1;
    `
	var m models.DriveCredential
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.AccessToken,
		&m.RefreshToken,
		&m.TokenType,
		&m.Expiry,
		&m.Scopes,
		&m.ConnectedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find drive credential for user %s: %w", userID, err)
	}
	cred := toDomainDriveCredential(m)
	return &cred, nil
}

func (r *PgxDriveCredentialRepository) UpdateAccessToken(ctx context.Context, userID string, accessToken string, expiry *time.Time) error {
	query := `
        UPDATE drive_credentials
        SET access_token = $1, expiry = $2, updated_at = $3
        WHERE user_id = $4;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, accessToken, expiry, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update drive access token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDriveCredentialRepository) DeleteCredential(ctx context.Context, userID string) (bool, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM drive_credentials WHERE user_id = $1;`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete drive credential: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// DriveCredentialRepository defines persistence operations for Google Drive
// OAuth credentials, keyed one-to-one by user id.
type DriveCredentialRepository interface {
	UpsertCredential(ctx context.Context, cred domain.DriveCredential) error
	FindCredentialByUserID(ctx context.Context, userID string) (*domain.DriveCredential, error)
	// UpdateAccessToken persists a silently refreshed access token.
	UpdateAccessToken(ctx context.Context, userID string, accessToken string, expiry *time.Time) error
	// DeleteCredential removes the stored credential; returns false when none existed.
	DeleteCredential(ctx context.Context, userID string) (bool, error)
}

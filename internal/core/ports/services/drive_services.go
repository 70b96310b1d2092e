package services

import (
	"context"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// ReceiptFolder addresses the logical folder a receipt belongs to:
// <base>/Kvitteringer/<afdeling>/<regnskabsår>.
type ReceiptFolder struct {
	AfdelingNavn string
	Regnskabsaar string
}

// DriveSvcFacade wraps the Google Drive receipt archive: per-user OAuth
// credentials with silent refresh, and file operations addressed by folder.
type DriveSvcFacade interface {
	// AuthorizationURL returns the Google consent URL for the user; the user
	// id travels as the OAuth state parameter.
	AuthorizationURL(ctx context.Context, userID string) (string, error)
	// HandleCallback exchanges the authorization code and stores the
	// credential pair for the user carried in state.
	HandleCallback(ctx context.Context, code string, state string) error
	// Status returns the stored credential, or apperrors.ErrDriveNotConnected.
	Status(ctx context.Context, userID string) (*domain.DriveCredential, error)
	// Disconnect removes the stored credential; returns false when none existed.
	Disconnect(ctx context.Context, userID string) (bool, error)

	UploadFile(ctx context.Context, userID string, folder ReceiptFolder, filename string, mimeType string, content []byte) (*domain.DriveFile, error)
	ListFolder(ctx context.Context, userID string, folder ReceiptFolder) ([]domain.DriveFile, error)
	DeleteFile(ctx context.Context, userID string, fileID string) error
	DownloadFile(ctx context.Context, userID string, fileID string) ([]byte, *domain.DriveFile, error)
}

package dto

import (
	"time"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// DriveAuthURLResponse carries the Google consent URL to redirect the user to.
type DriveAuthURLResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// DriveStatusResponse reports whether the user has a Drive credential on record.
type DriveStatusResponse struct {
	Connected   bool       `json:"connected"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
	Scopes      []string   `json:"scopes,omitempty"`
}

// UploadReceiptResponse is returned after a receipt is archived.
type UploadReceiptResponse struct {
	Success bool             `json:"success"`
	File    domain.DriveFile `json:"file"`
}

// SuccessResponse is the generic boolean outcome used by delete-style endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}

package domain

import "time"

// DriveCredential is a user's stored Google Drive OAuth credential pair.
// The access token is refreshed silently when expired; only a failed refresh
// surfaces to the user as a re-authentication prompt.
type DriveCredential struct {
	UserID       string     `json:"user_id"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	TokenType    string     `json:"-"`
	Expiry       *time.Time `json:"-"`
	Scopes       []string   `json:"scopes"`
	ConnectedAt  time.Time  `json:"connected_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DriveFile describes a file stored in the receipt archive.
type DriveFile struct {
	FileID       string `json:"file_id"`
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type,omitempty"`
	WebViewLink  string `json:"web_view_link,omitempty"`
	DownloadLink string `json:"download_link,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	Size         int64  `json:"size,omitempty"`
}

package models

import "time"

// DriveCredential is the persistence shape of a user's Google Drive OAuth tokens.
type DriveCredential struct {
	UserID       string     `db:"user_id"`
	AccessToken  string     `db:"access_token"`
	RefreshToken string     `db:"refresh_token"`
	TokenType    string     `db:"token_type"`
	Expiry       *time.Time `db:"expiry"`
	Scopes       []string   `db:"scopes"`
	ConnectedAt  time.Time  `db:"connected_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

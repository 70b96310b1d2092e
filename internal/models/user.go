package models

import "time"

// User is the persistence shape of an application user.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	Role         string  `db:"role"`
	AfdelingNavn *string `db:"afdeling_navn"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

package domain

import "time"

// Role is the application role assigned to a user.
type Role string

const (
	// RoleAdmin can read every department's data and manage settings, but not users.
	RoleAdmin Role = "admin"
	// RoleSuperbruger manages users and departments in addition to admin rights.
	RoleSuperbruger Role = "superbruger"
	// RoleAfdeling is a department-scoped bookkeeping user.
	RoleAfdeling Role = "afdeling"
)

// Valid reports whether the role is one of the known application roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSuperbruger, RoleAfdeling:
		return true
	}
	return false
}

// IsAdminLike reports whether the role may act across all departments.
func (r Role) IsAdminLike() bool {
	return r == RoleAdmin || r == RoleSuperbruger
}

// User represents an application user. A user with RoleAfdeling is itself the
// department identity: its UserID keys that department's settings and transactions.
type User struct {
	UserID       string  `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Role         Role    `json:"role"`
	AfdelingNavn *string `json:"afdeling_navn,omitempty"` // Set only for RoleAfdeling
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// CanAccessAfdeling reports whether the user may act on the given department id.
// Admin-like roles may act on any department; an afdeling user only on itself.
func (u User) CanAccessAfdeling(afdelingID string) bool {
	if u.Role.IsAdminLike() {
		return true
	}
	return u.Role == RoleAfdeling && u.UserID == afdelingID
}

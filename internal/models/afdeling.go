package models

import "time"

// Afdeling is the persistence shape of a department.
type Afdeling struct {
	AfdelingID string    `db:"afdeling_id"`
	Navn       string    `db:"navn"`
	Oprettet   time.Time `db:"oprettet"`
}

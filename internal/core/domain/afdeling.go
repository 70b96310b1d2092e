package domain

import "time"

// Afdeling is a department/branch entity. The navn is unique and is what links
// an afdeling-role user to its department.
type Afdeling struct {
	AfdelingID string    `json:"id"`
	Navn       string    `json:"navn"`
	Oprettet   time.Time `json:"oprettet"`
}

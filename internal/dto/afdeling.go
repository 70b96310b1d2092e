package dto

import (
	"time"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// CreateAfdelingRequest is the payload for creating a department.
type CreateAfdelingRequest struct {
	Navn string `json:"navn" binding:"required"`
}

// AfdelingResponse is the public shape of a department.
type AfdelingResponse struct {
	ID       string    `json:"id"`
	Navn     string    `json:"navn"`
	Oprettet time.Time `json:"oprettet"`
}

// ToAfdelingResponse maps a domain department.
func ToAfdelingResponse(a *domain.Afdeling) AfdelingResponse {
	return AfdelingResponse{ID: a.AfdelingID, Navn: a.Navn, Oprettet: a.Oprettet}
}

// ToAfdelingResponseList maps a slice of domain departments.
func ToAfdelingResponseList(afdelinger []domain.Afdeling) []AfdelingResponse {
	out := make([]AfdelingResponse, len(afdelinger))
	for i := range afdelinger {
		out[i] = ToAfdelingResponse(&afdelinger[i])
	}
	return out
}

package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// UpdateSettingsRequest is a partial settings update. Nil fields are left
// untouched; the voucher counter is never client-writable.
type UpdateSettingsRequest struct {
	Startsaldo   *decimal.Decimal `json:"startsaldo,omitempty"`
	PeriodeStart *string          `json:"periode_start,omitempty"`
	PeriodeSlut  *string          `json:"periode_slut,omitempty"`
	Regnskabsaar *string          `json:"regnskabsaar,omitempty"`
}

// SettingsResponse is the public shape of a department's settings.
type SettingsResponse struct {
	ID            string          `json:"id"`
	AfdelingID    string          `json:"afdeling_id"`
	Startsaldo    decimal.Decimal `json:"startsaldo"`
	PeriodeStart  string          `json:"periode_start"`
	PeriodeSlut   string          `json:"periode_slut"`
	Regnskabsaar  string          `json:"regnskabsaar"`
	NaesteBilagnr int64           `json:"naeste_bilagnr"`
}

// AfdelingSettingsResponse pairs one afdeling user with its settings for the
// admin settings overview.
type AfdelingSettingsResponse struct {
	AfdelingID   string           `json:"afdeling_id"`
	AfdelingNavn string           `json:"afdeling_navn"`
	Settings     SettingsResponse `json:"settings"`
}

// RegnskabsaarListResponse lists the accounting-year labels available for
// historical filtering.
type RegnskabsaarListResponse struct {
	Regnskabsaar []string `json:"regnskabsaar"`
}

// ToSettingsResponse maps domain settings.
func ToSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		ID:            s.SettingsID,
		AfdelingID:    s.AfdelingID,
		Startsaldo:    s.Startsaldo,
		PeriodeStart:  s.PeriodeStart,
		PeriodeSlut:   s.PeriodeSlut,
		Regnskabsaar:  s.Regnskabsaar,
		NaesteBilagnr: s.NaesteBilagnr,
	}
}

package models

import "github.com/shopspring/decimal"

// Settings is the persistence shape of a department's bookkeeping settings.
// There is at most one row per afdeling_id (unique constraint).
type Settings struct {
	SettingsID    string          `db:"settings_id"`
	AfdelingID    string          `db:"afdeling_id"`
	Startsaldo    decimal.Decimal `db:"startsaldo"`
	PeriodeStart  string          `db:"periode_start"`
	PeriodeSlut   string          `db:"periode_slut"`
	Regnskabsaar  string          `db:"regnskabsaar"`
	NaesteBilagnr int64           `db:"naeste_bilagnr"`
	AuditFields
}

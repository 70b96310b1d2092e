package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default accounting period applied when settings are materialized lazily.
const (
	DefaultPeriodeStart = "01-10-2024"
	DefaultPeriodeSlut  = "30-09-2025"
	DefaultRegnskabsaar = "2024-2025"
)

// Settings holds per-department bookkeeping configuration, keyed one-to-one by
// the afdeling user's id. NaesteBilagnr is the next voucher number to hand out;
// it is monotonic and never reset, even when transactions are deleted.
type Settings struct {
	SettingsID    string          `json:"id"`
	AfdelingID    string          `json:"afdeling_id"`
	Startsaldo    decimal.Decimal `json:"startsaldo"`
	PeriodeStart  string          `json:"periode_start"`
	PeriodeSlut   string          `json:"periode_slut"`
	Regnskabsaar  string          `json:"regnskabsaar"`
	NaesteBilagnr int64           `json:"naeste_bilagnr"`
	AuditFields
}

// DefaultSettings returns the settings record created on first access for a department.
func DefaultSettings(afdelingID string) Settings {
	return Settings{
		AfdelingID:    afdelingID,
		Startsaldo:    decimal.Zero,
		PeriodeStart:  DefaultPeriodeStart,
		PeriodeSlut:   DefaultPeriodeSlut,
		Regnskabsaar:  DefaultRegnskabsaar,
		NaesteBilagnr: 1,
	}
}

// AfdelingSettings pairs a department with its settings for the admin overview.
type AfdelingSettings struct {
	AfdelingID   string
	AfdelingNavn string
	Settings     Settings
}

// FormatBilagnr renders an allocated voucher counter value as the voucher number
// string stamped on a transaction, e.g. 1 -> "B001", 42 -> "B042", 1234 -> "B1234".
func FormatBilagnr(n int64) string {
	return fmt.Sprintf("B%03d", n)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence shape of a ledger entry.
type Transaction struct {
	TransactionID    string          `db:"transaction_id"`
	AfdelingID       string          `db:"afdeling_id"`
	Bilagnr          string          `db:"bilagnr"`
	BankDato         time.Time       `db:"bank_dato"`
	Tekst            string          `db:"tekst"`
	Formaal          string          `db:"formaal"`
	Beloeb           decimal.Decimal `db:"beloeb"`
	Type             string          `db:"type"`
	Regnskabsaar     string          `db:"regnskabsaar"`
	KvitteringFileID *string         `db:"kvittering_file_id"`
	KvitteringURL    *string         `db:"kvittering_url"`
	AuditFields
}

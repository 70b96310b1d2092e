package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry is income or expense.
type TransactionType string

const (
	Indtaegt TransactionType = "indtaegt" // income
	Udgift   TransactionType = "udgift"   // expense
)

// Valid reports whether the transaction type is a known value.
func (t TransactionType) Valid() bool {
	return t == Indtaegt || t == Udgift
}

// Transaction is a single ledger entry belonging to exactly one department.
// Bilagnr is assigned server-side at creation and immutable afterwards.
// Regnskabsaar is copied from the department's settings at creation time so the
// entry stays in its accounting year even after the settings roll over.
type Transaction struct {
	TransactionID    string          `json:"id"`
	AfdelingID       string          `json:"afdeling_id"`
	Bilagnr          string          `json:"bilagnr"`
	BankDato         time.Time       `json:"bank_dato"`
	Tekst            string          `json:"tekst"`
	Formaal          string          `json:"formal"`
	Beloeb           decimal.Decimal `json:"belob"`
	Type             TransactionType `json:"type"`
	Regnskabsaar     string          `json:"regnskabsaar"`
	KvitteringFileID *string         `json:"kvittering_file_id,omitempty"`
	KvitteringURL    *string         `json:"kvittering_url,omitempty"`
	AuditFields
}

// BankDatoLayout is the wire format for transaction bank dates.
const BankDatoLayout = "2006-01-02"

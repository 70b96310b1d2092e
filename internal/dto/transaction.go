package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// SaveTransactionRequest is the payload for creating or updating a ledger
// entry. Bilagnr and regnskabsaar are server-assigned and absent here.
type SaveTransactionRequest struct {
	BankDato string          `json:"bank_dato" binding:"required,datetime=2006-01-02"`
	Tekst    string          `json:"tekst" binding:"required"`
	Formaal  string          `json:"formal" binding:"required"`
	Beloeb   decimal.Decimal `json:"belob" binding:"required"`
	Type     string          `json:"type" binding:"required,oneof=indtaegt udgift"`
}

// ParsedBankDato returns the bank date as a time value. Binding has already
// validated the layout, so parse errors should not occur in practice.
func (r SaveTransactionRequest) ParsedBankDato() (time.Time, error) {
	return time.Parse(domain.BankDatoLayout, r.BankDato)
}

// TransactionResponse is the public shape of a ledger entry.
type TransactionResponse struct {
	ID               string          `json:"id"`
	AfdelingID       string          `json:"afdeling_id"`
	Bilagnr          string          `json:"bilagnr"`
	BankDato         string          `json:"bank_dato"`
	Tekst            string          `json:"tekst"`
	Formaal          string          `json:"formal"`
	Beloeb           decimal.Decimal `json:"belob"`
	Type             string          `json:"type"`
	Regnskabsaar     string          `json:"regnskabsaar"`
	KvitteringFileID *string         `json:"kvittering_file_id,omitempty"`
	KvitteringURL    *string         `json:"kvittering_url,omitempty"`
	Oprettet         time.Time       `json:"oprettet"`
}

// ToTransactionResponse maps a domain ledger entry.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.TransactionID,
		AfdelingID:       t.AfdelingID,
		Bilagnr:          t.Bilagnr,
		BankDato:         t.BankDato.Format(domain.BankDatoLayout),
		Tekst:            t.Tekst,
		Formaal:          t.Formaal,
		Beloeb:           t.Beloeb,
		Type:             string(t.Type),
		Regnskabsaar:     t.Regnskabsaar,
		KvitteringFileID: t.KvitteringFileID,
		KvitteringURL:    t.KvitteringURL,
		Oprettet:         t.CreatedAt,
	}
}

// ToTransactionResponseList maps a slice of domain ledger entries.
func ToTransactionResponseList(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

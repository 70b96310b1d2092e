package domain

import "github.com/shopspring/decimal"

// AfdelingSaldo is one department's derived balance in the org-wide dashboard.
type AfdelingSaldo struct {
	AfdelingID   string          `json:"afdeling_id"`
	AfdelingNavn string          `json:"afdeling_navn"`
	AktueltSaldo decimal.Decimal `json:"aktuelt_saldo"`
}

// DashboardStats is the balance summary for one department, or for the whole
// organization when AfdelingerSaldi is populated.
//
// The invariant throughout: AktueltSaldo = startsaldo + TotalIndtaegter - TotalUdgifter.
type DashboardStats struct {
	AktueltSaldo     decimal.Decimal `json:"aktuelt_saldo"`
	TotalIndtaegter  decimal.Decimal `json:"total_indtaegter"`
	TotalUdgifter    decimal.Decimal `json:"total_udgifter"`
	AntalPosteringer *int64          `json:"antal_posteringer,omitempty"`
	AfdelingerSaldi  []AfdelingSaldo `json:"afdelinger_saldi,omitempty"`
}

// TransactionSums is the per-type aggregation a balance is derived from.
type TransactionSums struct {
	Indtaegter decimal.Decimal
	Udgifter   decimal.Decimal
	Count      int64
}

// CurrentBalance applies the balance formula to a starting balance and summed entries.
func CurrentBalance(startsaldo decimal.Decimal, sums TransactionSums) decimal.Decimal {
	return startsaldo.Add(sums.Indtaegter).Sub(sums.Udgifter)
}

package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

func TestFormatBilagnr(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "first number", n: 1, want: "B001"},
		{name: "two digits", n: 42, want: "B042"},
		{name: "three digits", n: 999, want: "B999"},
		{name: "grows past the padding", n: 1234, want: "B1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.FormatBilagnr(tt.n))
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := domain.DefaultSettings("afd-1")

	assert.Equal(t, "afd-1", s.AfdelingID)
	assert.True(t, s.Startsaldo.IsZero())
	assert.Equal(t, "01-10-2024", s.PeriodeStart)
	assert.Equal(t, "30-09-2025", s.PeriodeSlut)
	assert.Equal(t, "2024-2025", s.Regnskabsaar)
	assert.EqualValues(t, 1, s.NaesteBilagnr)
}

func TestCurrentBalance(t *testing.T) {
	tests := []struct {
		name       string
		startsaldo int64
		indtaegter int64
		udgifter   int64
		want       int64
	}{
		{name: "income and expense", startsaldo: 1000, indtaegter: 500, udgifter: 200, want: 1300},
		{name: "no entries", startsaldo: 750, want: 750},
		{name: "balance may go negative", startsaldo: 100, udgifter: 250, want: -150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.CurrentBalance(decimal.NewFromInt(tt.startsaldo), domain.TransactionSums{
				Indtaegter: decimal.NewFromInt(tt.indtaegter),
				Udgifter:   decimal.NewFromInt(tt.udgifter),
			})
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s", got)
		})
	}
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, domain.Indtaegt.Valid())
	assert.True(t, domain.Udgift.Valid())
	assert.False(t, domain.TransactionType("overfoersel").Valid())
	assert.False(t, domain.TransactionType("").Valid())
}

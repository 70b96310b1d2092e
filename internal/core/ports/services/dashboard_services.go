package services

import (
	"context"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// DashboardSvcFacade derives balance summaries from settings and ledger entries.
type DashboardSvcFacade interface {
	// GetStats computes the balance summary. An afdeling caller gets its own
	// department; an admin-like caller gets one department when afdelingID is
	// set, otherwise the org-wide view with per-department saldi. regnskabsaar
	// optionally restricts the sums to one accounting year.
	GetStats(ctx context.Context, actor domain.User, afdelingID string, regnskabsaar string) (*domain.DashboardStats, error)
}

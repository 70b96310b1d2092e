package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
)

type DashboardService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
	settingsRepo    portsrepo.SettingsRepository
	userRepo        portsrepo.UserRepository
}

func NewDashboardService(
	transactionRepo portsrepo.TransactionRepository,
	settingsRepo portsrepo.SettingsRepository,
	userRepo portsrepo.UserRepository,
) *DashboardService {
	return &DashboardService{
		transactionRepo: transactionRepo,
		settingsRepo:    settingsRepo,
		userRepo:        userRepo,
	}
}

var _ portssvc.DashboardSvcFacade = (*DashboardService)(nil)

func (s *DashboardService) GetStats(ctx context.Context, actor domain.User, afdelingID string, regnskabsaar string) (*domain.DashboardStats, error) {
	switch {
	case actor.Role == domain.RoleAfdeling:
		return s.afdelingStats(ctx, actor, actor.UserID, regnskabsaar)
	case actor.Role.IsAdminLike():
		if afdelingID != "" {
			return s.afdelingStats(ctx, actor, afdelingID, regnskabsaar)
		}
		return s.orgStats(ctx, actor, regnskabsaar)
	default:
		return nil, apperrors.ErrForbidden
	}
}

func (s *DashboardService) afdelingStats(ctx context.Context, actor domain.User, afdelingID string, regnskabsaar string) (*domain.DashboardStats, error) {
	settings, err := s.settingsRepo.EnsureSettings(ctx, afdelingID, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "failed to load settings", "afdeling_id", afdelingID)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	sums, err := s.transactionRepo.SumByType(ctx, afdelingID, regnskabsaar)
	if err != nil {
		s.LogError(ctx, err, "failed to sum transactions", "afdeling_id", afdelingID)
		return nil, fmt.Errorf("failed to sum transactions: %w", err)
	}

	count := sums.Count
	return &domain.DashboardStats{
		AktueltSaldo:     domain.CurrentBalance(settings.Startsaldo, sums),
		TotalIndtaegter:  sums.Indtaegter,
		TotalUdgifter:    sums.Udgifter,
		AntalPosteringer: &count,
	}, nil
}

// orgStats aggregates across every afdeling user. The org balance is the sum
// of per-department balances, so each department's startsaldo counts once.
func (s *DashboardService) orgStats(ctx context.Context, actor domain.User, regnskabsaar string) (*domain.DashboardStats, error) {
	afdelingUsers, err := s.userRepo.FindUsersByRole(ctx, domain.RoleAfdeling)
	if err != nil {
		s.LogError(ctx, err, "failed to list afdeling users")
		return nil, fmt.Errorf("failed to list afdeling users: %w", err)
	}

	stats := domain.DashboardStats{
		AktueltSaldo:    decimal.Zero,
		TotalIndtaegter: decimal.Zero,
		TotalUdgifter:   decimal.Zero,
		AfdelingerSaldi: make([]domain.AfdelingSaldo, 0, len(afdelingUsers)),
	}
	var count int64

	for _, u := range afdelingUsers {
		settings, err := s.settingsRepo.EnsureSettings(ctx, u.UserID, actor.UserID)
		if err != nil {
			s.LogError(ctx, err, "failed to load settings", "afdeling_id", u.UserID)
			return nil, fmt.Errorf("failed to load settings for afdeling %s: %w", u.UserID, err)
		}
		sums, err := s.transactionRepo.SumByType(ctx, u.UserID, regnskabsaar)
		if err != nil {
			s.LogError(ctx, err, "failed to sum transactions", "afdeling_id", u.UserID)
			return nil, fmt.Errorf("failed to sum transactions for afdeling %s: %w", u.UserID, err)
		}

		saldo := domain.CurrentBalance(settings.Startsaldo, sums)
		navn := u.Username
		if u.AfdelingNavn != nil {
			navn = *u.AfdelingNavn
		}
		stats.AfdelingerSaldi = append(stats.AfdelingerSaldi, domain.AfdelingSaldo{
			AfdelingID:   u.UserID,
			AfdelingNavn: navn,
			AktueltSaldo: saldo,
		})

		stats.AktueltSaldo = stats.AktueltSaldo.Add(saldo)
		stats.TotalIndtaegter = stats.TotalIndtaegter.Add(sums.Indtaegter)
		stats.TotalUdgifter = stats.TotalUdgifter.Add(sums.Udgifter)
		count += sums.Count
	}

	stats.AntalPosteringer = &count
	return &stats, nil
}

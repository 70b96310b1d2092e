package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/services"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockSettingsRepo *MockSettingsRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.DashboardSvcFacade
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewDashboardService(suite.mockTxnRepo, suite.mockSettingsRepo, suite.mockUserRepo)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func settingsWithSaldo(afdelingID string, startsaldo int64) *domain.Settings {
	s := domain.DefaultSettings(afdelingID)
	s.Startsaldo = decimal.NewFromInt(startsaldo)
	return &s
}

// Startsaldo 1000, one income of 500 and one expense of 200 leaves 1300.
func (suite *DashboardServiceTestSuite) TestGetStats_BalanceFormula() {
	ctx := context.Background()
	actor := afdelingActor(uuid.NewString(), "Hold Nord")

	suite.mockSettingsRepo.On("EnsureSettings", ctx, actor.UserID, actor.UserID).Return(settingsWithSaldo(actor.UserID, 1000), nil).Once()
	suite.mockTxnRepo.On("SumByType", ctx, actor.UserID, "").Return(domain.TransactionSums{
		Indtaegter: decimal.NewFromInt(500),
		Udgifter:   decimal.NewFromInt(200),
		Count:      2,
	}, nil).Once()

	stats, err := suite.service.GetStats(ctx, actor, "", "")

	suite.Require().NoError(err)
	suite.True(stats.AktueltSaldo.Equal(decimal.NewFromInt(1300)), "saldo was %s", stats.AktueltSaldo)
	suite.True(stats.TotalIndtaegter.Equal(decimal.NewFromInt(500)))
	suite.True(stats.TotalUdgifter.Equal(decimal.NewFromInt(200)))
	suite.Require().NotNil(stats.AntalPosteringer)
	suite.EqualValues(2, *stats.AntalPosteringer)
	suite.Empty(stats.AfdelingerSaldi)
}

func (suite *DashboardServiceTestSuite) TestGetStats_EmptyDepartmentIsStartsaldo() {
	ctx := context.Background()
	actor := afdelingActor(uuid.NewString(), "Hold Nord")

	suite.mockSettingsRepo.On("EnsureSettings", ctx, actor.UserID, actor.UserID).Return(settingsWithSaldo(actor.UserID, 750), nil).Once()
	suite.mockTxnRepo.On("SumByType", ctx, actor.UserID, "").Return(domain.TransactionSums{}, nil).Once()

	stats, err := suite.service.GetStats(ctx, actor, "", "")

	suite.Require().NoError(err)
	suite.True(stats.AktueltSaldo.Equal(decimal.NewFromInt(750)))
	suite.EqualValues(0, *stats.AntalPosteringer)
}

// The org view is additive: its totals are the sums over departments, and the
// org balance counts every department's startsaldo exactly once.
func (suite *DashboardServiceTestSuite) TestGetStats_OrgWideAdditivity() {
	ctx := context.Background()
	admin := adminActor(uuid.NewString())
	nord := domain.User{UserID: uuid.NewString(), Username: "hold-nord", Role: domain.RoleAfdeling, AfdelingNavn: strPtr("Hold Nord")}
	syd := domain.User{UserID: uuid.NewString(), Username: "hold-syd", Role: domain.RoleAfdeling, AfdelingNavn: strPtr("Hold Syd")}

	suite.mockUserRepo.On("FindUsersByRole", ctx, domain.RoleAfdeling).Return([]domain.User{nord, syd}, nil).Once()
	suite.mockSettingsRepo.On("EnsureSettings", ctx, nord.UserID, admin.UserID).Return(settingsWithSaldo(nord.UserID, 1000), nil).Once()
	suite.mockSettingsRepo.On("EnsureSettings", ctx, syd.UserID, admin.UserID).Return(settingsWithSaldo(syd.UserID, 500), nil).Once()
	suite.mockTxnRepo.On("SumByType", ctx, nord.UserID, "").Return(domain.TransactionSums{
		Indtaegter: decimal.NewFromInt(500),
		Udgifter:   decimal.NewFromInt(200),
		Count:      2,
	}, nil).Once()
	suite.mockTxnRepo.On("SumByType", ctx, syd.UserID, "").Return(domain.TransactionSums{
		Indtaegter: decimal.NewFromInt(100),
		Udgifter:   decimal.NewFromInt(50),
		Count:      3,
	}, nil).Once()

	stats, err := suite.service.GetStats(ctx, admin, "", "")

	suite.Require().NoError(err)
	// 1300 + 550
	suite.True(stats.AktueltSaldo.Equal(decimal.NewFromInt(1850)), "saldo was %s", stats.AktueltSaldo)
	suite.True(stats.TotalIndtaegter.Equal(decimal.NewFromInt(600)))
	suite.True(stats.TotalUdgifter.Equal(decimal.NewFromInt(250)))
	suite.EqualValues(5, *stats.AntalPosteringer)

	suite.Require().Len(stats.AfdelingerSaldi, 2)
	suite.Equal("Hold Nord", stats.AfdelingerSaldi[0].AfdelingNavn)
	suite.True(stats.AfdelingerSaldi[0].AktueltSaldo.Equal(decimal.NewFromInt(1300)))
	suite.Equal("Hold Syd", stats.AfdelingerSaldi[1].AfdelingNavn)
	suite.True(stats.AfdelingerSaldi[1].AktueltSaldo.Equal(decimal.NewFromInt(550)))
}

func (suite *DashboardServiceTestSuite) TestGetStats_AdminSingleAfdeling() {
	ctx := context.Background()
	admin := adminActor(uuid.NewString())
	afdelingID := uuid.NewString()

	suite.mockSettingsRepo.On("EnsureSettings", ctx, afdelingID, admin.UserID).Return(settingsWithSaldo(afdelingID, 100), nil).Once()
	suite.mockTxnRepo.On("SumByType", ctx, afdelingID, "2024-2025").Return(domain.TransactionSums{
		Indtaegter: decimal.NewFromInt(40),
		Count:      1,
	}, nil).Once()

	stats, err := suite.service.GetStats(ctx, admin, afdelingID, "2024-2025")

	suite.Require().NoError(err)
	suite.True(stats.AktueltSaldo.Equal(decimal.NewFromInt(140)))
	suite.Empty(stats.AfdelingerSaldi)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// An afdeling caller cannot peek at another department by passing its id; the
// filter argument is ignored for that role.
func (suite *DashboardServiceTestSuite) TestGetStats_AfdelingIgnoresRequestedID() {
	ctx := context.Background()
	actor := afdelingActor(uuid.NewString(), "Hold Nord")

	suite.mockSettingsRepo.On("EnsureSettings", ctx, actor.UserID, actor.UserID).Return(settingsWithSaldo(actor.UserID, 0), nil).Once()
	suite.mockTxnRepo.On("SumByType", ctx, actor.UserID, "").Return(domain.TransactionSums{}, nil).Once()

	_, err := suite.service.GetStats(ctx, actor, uuid.NewString(), "")

	suite.Require().NoError(err)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestGetStats_SettingsFailurePropagates() {
	ctx := context.Background()
	actor := afdelingActor(uuid.NewString(), "Hold Nord")

	suite.mockSettingsRepo.On("EnsureSettings", ctx, actor.UserID, actor.UserID).Return(nil, apperrors.ErrNotFound).Once()

	stats, err := suite.service.GetStats(ctx, actor, "", "")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(stats)
}

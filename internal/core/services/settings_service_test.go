package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	mockSettingsRepo *MockSettingsRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.SettingsSvcFacade
	afdeling         domain.User
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewSettingsService(suite.mockSettingsRepo, suite.mockUserRepo)
	suite.afdeling = afdelingActor(uuid.NewString(), "Hold Nord")
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

func (suite *SettingsServiceTestSuite) currentSettings() *domain.Settings {
	return &domain.Settings{
		SettingsID:    uuid.NewString(),
		AfdelingID:    suite.afdeling.UserID,
		Startsaldo:    decimal.NewFromInt(1000),
		PeriodeStart:  "01-10-2024",
		PeriodeSlut:   "30-09-2025",
		Regnskabsaar:  "2024-2025",
		NaesteBilagnr: 7,
	}
}

func (suite *SettingsServiceTestSuite) TestGetOwnSettings_MaterializesDefaults() {
	ctx := context.Background()
	defaults := domain.DefaultSettings(suite.afdeling.UserID)

	suite.mockSettingsRepo.On("EnsureSettings", ctx, suite.afdeling.UserID, suite.afdeling.UserID).Return(&defaults, nil).Once()

	settings, err := suite.service.GetOwnSettings(ctx, suite.afdeling)

	suite.Require().NoError(err)
	suite.True(settings.Startsaldo.IsZero())
	suite.Equal("2024-2025", settings.Regnskabsaar)
	suite.EqualValues(1, settings.NaesteBilagnr)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestGetOwnSettings_ForbiddenForAdmin() {
	ctx := context.Background()

	settings, err := suite.service.GetOwnSettings(ctx, adminActor(uuid.NewString()))

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(settings)
}

// A partial update only moves the fields the request carries; everything else,
// including the voucher counter, survives untouched.
func (suite *SettingsServiceTestSuite) TestUpdateOwnSettings_PartialMerge() {
	ctx := context.Background()
	current := suite.currentSettings()
	newSaldo := decimal.NewFromInt(2500)

	suite.mockSettingsRepo.On("EnsureSettings", ctx, suite.afdeling.UserID, suite.afdeling.UserID).Return(current, nil).Once()
	suite.mockSettingsRepo.On("UpdateSettings", ctx, mock.MatchedBy(func(s domain.Settings) bool {
		return s.Startsaldo.Equal(newSaldo) &&
			s.PeriodeStart == "01-10-2024" &&
			s.PeriodeSlut == "30-09-2025" &&
			s.Regnskabsaar == "2024-2025" &&
			s.NaesteBilagnr == 7
	})).Return(nil).Once()

	settings, err := suite.service.UpdateOwnSettings(ctx, suite.afdeling, dto.UpdateSettingsRequest{Startsaldo: &newSaldo})

	suite.Require().NoError(err)
	suite.True(settings.Startsaldo.Equal(newSaldo))
	suite.EqualValues(7, settings.NaesteBilagnr)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestUpdateOwnSettings_EmptyRegnskabsaarRejected() {
	ctx := context.Background()
	current := suite.currentSettings()

	suite.mockSettingsRepo.On("EnsureSettings", ctx, suite.afdeling.UserID, suite.afdeling.UserID).Return(current, nil).Once()

	settings, err := suite.service.UpdateOwnSettings(ctx, suite.afdeling, dto.UpdateSettingsRequest{Regnskabsaar: strPtr("")})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(settings)
	suite.mockSettingsRepo.AssertNotCalled(suite.T(), "UpdateSettings", mock.Anything, mock.Anything)
}

func (suite *SettingsServiceTestSuite) TestUpdateOwnSettings_ForbiddenForAdmin() {
	ctx := context.Background()

	settings, err := suite.service.UpdateOwnSettings(ctx, adminActor(uuid.NewString()), dto.UpdateSettingsRequest{})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(settings)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettingsForAfdeling_AdminAllowed() {
	ctx := context.Background()
	admin := adminActor(uuid.NewString())
	target := &domain.User{UserID: suite.afdeling.UserID, Username: "hold-nord", Role: domain.RoleAfdeling, AfdelingNavn: strPtr("Hold Nord")}
	current := suite.currentSettings()
	newYear := "2025-2026"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.afdeling.UserID).Return(target, nil).Once()
	suite.mockSettingsRepo.On("EnsureSettings", ctx, suite.afdeling.UserID, admin.UserID).Return(current, nil).Once()
	suite.mockSettingsRepo.On("UpdateSettings", ctx, mock.MatchedBy(func(s domain.Settings) bool {
		return s.Regnskabsaar == newYear && s.LastUpdatedBy == admin.UserID
	})).Return(nil).Once()

	settings, err := suite.service.UpdateSettingsForAfdeling(ctx, admin, suite.afdeling.UserID, dto.UpdateSettingsRequest{Regnskabsaar: &newYear})

	suite.Require().NoError(err)
	suite.Equal(newYear, settings.Regnskabsaar)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestUpdateSettingsForAfdeling_TargetMustBeAfdeling() {
	ctx := context.Background()
	admin := adminActor(uuid.NewString())
	targetID := uuid.NewString()
	target := &domain.User{UserID: targetID, Username: "kasserer", Role: domain.RoleSuperbruger}

	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(target, nil).Once()

	settings, err := suite.service.UpdateSettingsForAfdeling(ctx, admin, targetID, dto.UpdateSettingsRequest{})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(settings)
	suite.mockSettingsRepo.AssertNotCalled(suite.T(), "UpdateSettings", mock.Anything, mock.Anything)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettingsForAfdeling_ForbiddenForAfdeling() {
	ctx := context.Background()

	settings, err := suite.service.UpdateSettingsForAfdeling(ctx, suite.afdeling, uuid.NewString(), dto.UpdateSettingsRequest{})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(settings)
}

func (suite *SettingsServiceTestSuite) TestListAllSettings_OnePerAfdelingUser() {
	ctx := context.Background()
	admin := adminActor(uuid.NewString())
	userA := domain.User{UserID: uuid.NewString(), Username: "hold-nord", Role: domain.RoleAfdeling, AfdelingNavn: strPtr("Hold Nord")}
	userB := domain.User{UserID: uuid.NewString(), Username: "hold-syd", Role: domain.RoleAfdeling}
	settingsA := domain.DefaultSettings(userA.UserID)
	settingsB := domain.DefaultSettings(userB.UserID)

	suite.mockUserRepo.On("FindUsersByRole", ctx, domain.RoleAfdeling).Return([]domain.User{userA, userB}, nil).Once()
	suite.mockSettingsRepo.On("EnsureSettings", ctx, userA.UserID, admin.UserID).Return(&settingsA, nil).Once()
	suite.mockSettingsRepo.On("EnsureSettings", ctx, userB.UserID, admin.UserID).Return(&settingsB, nil).Once()

	all, err := suite.service.ListAllSettings(ctx, admin)

	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("Hold Nord", all[0].AfdelingNavn)
	// A user without a department name falls back to the username.
	suite.Equal("hold-syd", all[1].AfdelingNavn)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestListRegnskabsaar_Descending() {
	ctx := context.Background()
	admin := adminActor(uuid.NewString())

	suite.mockSettingsRepo.On("ListRegnskabsaar", ctx).Return([]string{"2025-2026", "2024-2025"}, nil).Once()

	labels, err := suite.service.ListRegnskabsaar(ctx, admin)

	suite.Require().NoError(err)
	suite.Equal([]string{"2025-2026", "2024-2025"}, labels)
}

func (suite *SettingsServiceTestSuite) TestListRegnskabsaar_ForbiddenForAfdeling() {
	ctx := context.Background()

	labels, err := suite.service.ListRegnskabsaar(ctx, suite.afdeling)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(labels)
}

package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/services"
)

type ExportServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockSettingsRepo *MockSettingsRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.ExportSvcFacade
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewExportService(suite.mockTxnRepo, suite.mockSettingsRepo, suite.mockUserRepo)
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

func makeTxn(afdelingID, bilagnr string, day int, beloeb int64, txType domain.TransactionType) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		AfdelingID:    afdelingID,
		Bilagnr:       bilagnr,
		BankDato:      time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		Tekst:         "Postering " + bilagnr,
		Formaal:       "Diverse",
		Beloeb:        decimal.NewFromInt(beloeb),
		Type:          txType,
		Regnskabsaar:  "2024-2025",
	}
}

func (suite *ExportServiceTestSuite) expectAfdelingData(afdelingID string, actorID string, startsaldo int64, txns []domain.Transaction) {
	settings := domain.DefaultSettings(afdelingID)
	settings.Startsaldo = decimal.NewFromInt(startsaldo)
	suite.mockSettingsRepo.On("EnsureSettings", bgCtx, afdelingID, actorID).Return(&settings, nil).Once()
	suite.mockTxnRepo.On("ListTransactions", bgCtx, portsrepo.TransactionFilter{
		AfdelingID: afdelingID,
		OrderAsc:   true,
	}).Return(txns, nil).Once()
}

// bgCtx is shared so expectations match the context the service forwards.
var bgCtx = context.Background()

func (suite *ExportServiceTestSuite) TestExportExcel_AfdelingSheetLayout() {
	actor := afdelingActor(uuid.NewString(), "Hold Nord")
	txns := []domain.Transaction{
		makeTxn(actor.UserID, "B001", 5, 500, domain.Indtaegt),
		makeTxn(actor.UserID, "B002", 20, 200, domain.Udgift),
	}
	suite.expectAfdelingData(actor.UserID, actor.UserID, 1000, txns)

	data, filename, err := suite.service.ExportExcel(bgCtx, actor, "", "")

	suite.Require().NoError(err)
	suite.Equal("tour_de_taxa_bogforing.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	suite.Require().NoError(err)
	defer f.Close()

	suite.Equal([]string{"Hold Nord"}, f.GetSheetList())

	rows, err := f.GetRows("Hold Nord")
	suite.Require().NoError(err)
	// Startsaldo, blank, header, two entries, blank, saldo.
	suite.Require().Len(rows, len(txns)+5)

	suite.Equal("Startsaldo", rows[0][0])
	suite.Equal("1000", rows[0][4])
	suite.Empty(rows[1])
	suite.Equal([]string{"Bilagnr.", "Bank dato", "Tekst", "Formål", "Beløb", "Type"}, rows[2])
	suite.Equal("B001", rows[3][0])
	suite.Equal("2025-01-05", rows[3][1])
	suite.Equal("B002", rows[4][0])
	suite.Empty(rows[5])
	suite.Equal("Aktuel saldo", rows[6][0])
	// 1000 + 500 - 200
	suite.Equal("1300", rows[6][4])
}

func (suite *ExportServiceTestSuite) TestExportExcel_SanitizesSheetName() {
	actor := afdelingActor(uuid.NewString(), "Hold A/B: Øst?")
	suite.expectAfdelingData(actor.UserID, actor.UserID, 0, []domain.Transaction{})

	data, _, err := suite.service.ExportExcel(bgCtx, actor, "", "")

	suite.Require().NoError(err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	suite.Require().NoError(err)
	defer f.Close()

	suite.Equal([]string{"Hold A-B Øst"}, f.GetSheetList())
}

// Worksheet names are capped at 31 characters, not bytes. A long Danish name
// must not be cut mid-rune, including on the duplicate-suffix path.
func (suite *ExportServiceTestSuite) TestExportExcel_TruncatesLongSheetNameByRunes() {
	longNavn := strings.Repeat("Ø", 40)
	admin := adminActor(uuid.NewString())
	first := domain.User{UserID: uuid.NewString(), Username: "hold-a", Role: domain.RoleAfdeling, AfdelingNavn: strPtr(longNavn)}
	second := domain.User{UserID: uuid.NewString(), Username: "hold-b", Role: domain.RoleAfdeling, AfdelingNavn: strPtr(longNavn)}

	suite.mockUserRepo.On("FindUsersByRole", bgCtx, domain.RoleAfdeling).Return([]domain.User{first, second}, nil).Once()
	suite.expectAfdelingData(first.UserID, admin.UserID, 0, []domain.Transaction{})
	suite.expectAfdelingData(second.UserID, admin.UserID, 0, []domain.Transaction{})

	data, _, err := suite.service.ExportExcel(bgCtx, admin, "", "")

	suite.Require().NoError(err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	suite.Require().NoError(err)
	defer f.Close()

	sheets := f.GetSheetList()
	suite.Require().Len(sheets, 3)
	suite.Equal(strings.Repeat("Ø", 31), sheets[0])
	suite.Equal(strings.Repeat("Ø", 29)+" 2", sheets[1])
	for _, name := range sheets {
		suite.True(utf8.ValidString(name), "sheet name %q contains a split rune", name)
		suite.LessOrEqual(len([]rune(name)), 31)
	}
}

// Admin export without a department filter gets one sheet per department plus
// the combined sheet with every entry globally sorted by bank date.
func (suite *ExportServiceTestSuite) TestExportExcel_AdminCombinedSheet() {
	admin := adminActor(uuid.NewString())
	nord := domain.User{UserID: uuid.NewString(), Username: "hold-nord", Role: domain.RoleAfdeling, AfdelingNavn: strPtr("Hold Nord")}
	syd := domain.User{UserID: uuid.NewString(), Username: "hold-syd", Role: domain.RoleAfdeling, AfdelingNavn: strPtr("Hold Syd")}

	suite.mockUserRepo.On("FindUsersByRole", bgCtx, domain.RoleAfdeling).Return([]domain.User{nord, syd}, nil).Once()
	suite.expectAfdelingData(nord.UserID, admin.UserID, 1000, []domain.Transaction{
		makeTxn(nord.UserID, "B001", 10, 500, domain.Indtaegt),
	})
	suite.expectAfdelingData(syd.UserID, admin.UserID, 500, []domain.Transaction{
		makeTxn(syd.UserID, "B001", 5, 100, domain.Udgift),
		makeTxn(syd.UserID, "B002", 15, 300, domain.Indtaegt),
	})

	data, _, err := suite.service.ExportExcel(bgCtx, admin, "", "")

	suite.Require().NoError(err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	suite.Require().NoError(err)
	defer f.Close()

	suite.Equal([]string{"Hold Nord", "Hold Syd", "Alle hold"}, f.GetSheetList())

	rows, err := f.GetRows("Alle hold")
	suite.Require().NoError(err)
	// Header plus three entries; no summary rows on the combined sheet.
	suite.Require().Len(rows, 4)
	suite.Equal([]string{"Hold", "Bilagnr.", "Bank dato", "Tekst", "Formål", "Beløb", "Type"}, rows[0])

	// Globally date ascending across departments.
	suite.Equal("Hold Syd", rows[1][0])
	suite.Equal("2025-01-05", rows[1][2])
	suite.Equal("Hold Nord", rows[2][0])
	suite.Equal("2025-01-10", rows[2][2])
	suite.Equal("Hold Syd", rows[3][0])
	suite.Equal("2025-01-15", rows[3][2])
}

func (suite *ExportServiceTestSuite) TestExportExcel_AdminSingleAfdelingNoCombined() {
	admin := adminActor(uuid.NewString())
	nord := domain.User{UserID: uuid.NewString(), Username: "hold-nord", Role: domain.RoleAfdeling, AfdelingNavn: strPtr("Hold Nord")}

	suite.mockUserRepo.On("FindUserByID", bgCtx, nord.UserID).Return(&nord, nil).Once()
	settings := domain.DefaultSettings(nord.UserID)
	suite.mockSettingsRepo.On("EnsureSettings", bgCtx, nord.UserID, admin.UserID).Return(&settings, nil).Once()
	suite.mockTxnRepo.On("ListTransactions", bgCtx, portsrepo.TransactionFilter{
		AfdelingID:   nord.UserID,
		Regnskabsaar: "2024-2025",
		OrderAsc:     true,
	}).Return([]domain.Transaction{}, nil).Once()

	data, _, err := suite.service.ExportExcel(bgCtx, admin, nord.UserID, "2024-2025")

	suite.Require().NoError(err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	suite.Require().NoError(err)
	defer f.Close()

	suite.Equal([]string{"Hold Nord"}, f.GetSheetList())
}

func (suite *ExportServiceTestSuite) TestExportExcel_DuplicateSheetNamesSuffixed() {
	admin := adminActor(uuid.NewString())
	a := domain.User{UserID: uuid.NewString(), Username: "hold-a", Role: domain.RoleAfdeling, AfdelingNavn: strPtr("Hold Nord")}
	b := domain.User{UserID: uuid.NewString(), Username: "hold-b", Role: domain.RoleAfdeling, AfdelingNavn: strPtr("Hold Nord")}

	suite.mockUserRepo.On("FindUsersByRole", bgCtx, domain.RoleAfdeling).Return([]domain.User{a, b}, nil).Once()
	suite.expectAfdelingData(a.UserID, admin.UserID, 0, []domain.Transaction{})
	suite.expectAfdelingData(b.UserID, admin.UserID, 0, []domain.Transaction{})

	data, _, err := suite.service.ExportExcel(bgCtx, admin, "", "")

	suite.Require().NoError(err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	suite.Require().NoError(err)
	defer f.Close()

	suite.Equal([]string{"Hold Nord", "Hold Nord 2", "Alle hold"}, f.GetSheetList())
}

func (suite *ExportServiceTestSuite) TestExportExcel_NotFoundAfdelingPropagates() {
	admin := adminActor(uuid.NewString())
	missing := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", bgCtx, missing).Return(nil, apperrors.ErrNotFound).Once()

	data, _, err := suite.service.ExportExcel(bgCtx, admin, missing, "")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(data)
}

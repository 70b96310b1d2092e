package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
)

const (
	exportFilename    = "tour_de_taxa_bogforing.xlsx"
	combinedSheetName = "Alle hold"
	headerFillColor   = "109848"
	maxColumnWidth    = 50.0
	maxSheetNameLen   = 31
)

type ExportService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
	settingsRepo    portsrepo.SettingsRepository
	userRepo        portsrepo.UserRepository
}

func NewExportService(
	transactionRepo portsrepo.TransactionRepository,
	settingsRepo portsrepo.SettingsRepository,
	userRepo portsrepo.UserRepository,
) *ExportService {
	return &ExportService{
		transactionRepo: transactionRepo,
		settingsRepo:    settingsRepo,
		userRepo:        userRepo,
	}
}

var _ portssvc.ExportSvcFacade = (*ExportService)(nil)

// afdelingExport is the data one sheet is rendered from.
type afdelingExport struct {
	Navn         string
	Startsaldo   decimal.Decimal
	Saldo        decimal.Decimal
	Transactions []domain.Transaction
}

func (s *ExportService) ExportExcel(ctx context.Context, actor domain.User, afdelingID string, regnskabsaar string) ([]byte, string, error) {
	var targets []domain.User
	switch {
	case actor.Role == domain.RoleAfdeling:
		targets = []domain.User{actor}
	case actor.Role.IsAdminLike():
		if afdelingID != "" {
			target, err := s.userRepo.FindUserByID(ctx, afdelingID)
			if err != nil {
				return nil, "", err
			}
			targets = []domain.User{*target}
		} else {
			all, err := s.userRepo.FindUsersByRole(ctx, domain.RoleAfdeling)
			if err != nil {
				s.LogError(ctx, err, "failed to list afdeling users")
				return nil, "", fmt.Errorf("failed to list afdeling users: %w", err)
			}
			targets = all
		}
	default:
		return nil, "", apperrors.ErrForbidden
	}

	exports := make([]afdelingExport, 0, len(targets))
	for _, u := range targets {
		exp, err := s.collectAfdeling(ctx, actor, u, regnskabsaar)
		if err != nil {
			return nil, "", err
		}
		exports = append(exports, *exp)
	}

	combined := actor.Role.IsAdminLike() && afdelingID == ""
	data, err := renderWorkbook(exports, combined)
	if err != nil {
		s.LogError(ctx, err, "failed to render workbook")
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}
	return data, exportFilename, nil
}

func (s *ExportService) collectAfdeling(ctx context.Context, actor domain.User, target domain.User, regnskabsaar string) (*afdelingExport, error) {
	settings, err := s.settingsRepo.EnsureSettings(ctx, target.UserID, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "failed to load settings", "afdeling_id", target.UserID)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	txns, err := s.transactionRepo.ListTransactions(ctx, portsrepo.TransactionFilter{
		AfdelingID:   target.UserID,
		Regnskabsaar: regnskabsaar,
		OrderAsc:     true,
	})
	if err != nil {
		s.LogError(ctx, err, "failed to list transactions", "afdeling_id", target.UserID)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	sums := domain.TransactionSums{Indtaegter: decimal.Zero, Udgifter: decimal.Zero}
	for _, t := range txns {
		switch t.Type {
		case domain.Indtaegt:
			sums.Indtaegter = sums.Indtaegter.Add(t.Beloeb)
		case domain.Udgift:
			sums.Udgifter = sums.Udgifter.Add(t.Beloeb)
		}
	}

	navn := target.Username
	if target.AfdelingNavn != nil && *target.AfdelingNavn != "" {
		navn = *target.AfdelingNavn
	}
	return &afdelingExport{
		Navn:         navn,
		Startsaldo:   settings.Startsaldo,
		Saldo:        domain.CurrentBalance(settings.Startsaldo, sums),
		Transactions: txns,
	}, nil
}

// sanitizeSheetName makes a department name usable as a worksheet name.
// Slashes become dashes, the remaining forbidden characters are dropped, and
// the result is capped at the 31-character worksheet limit.
func sanitizeSheetName(name string) string {
	replaced := strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	var b strings.Builder
	for _, r := range replaced {
		switch r {
		case '[', ']', '*', '?', ':':
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" {
		out = "Ark"
	}
	return truncateRunes(out, maxSheetNameLen)
}

// truncateRunes caps s at max runes. Excel counts the worksheet-name limit in
// characters, so slicing bytes would split æ/ø/å at the boundary.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

type sheetStyles struct {
	bold   int
	header int
	saldo  int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return sheetStyles{}, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return sheetStyles{}, err
	}
	saldo, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFillColor},
	})
	if err != nil {
		return sheetStyles{}, err
	}
	return sheetStyles{bold: bold, header: header, saldo: saldo}, nil
}

func renderWorkbook(exports []afdelingExport, combined bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	used := map[string]bool{}
	for i, exp := range exports {
		name := sanitizeSheetName(exp.Navn)
		// Worksheet names must be unique; suffix duplicates.
		for n := 2; used[name]; n++ {
			suffix := fmt.Sprintf(" %d", n)
			base := truncateRunes(sanitizeSheetName(exp.Navn), maxSheetNameLen-len(suffix))
			name = base + suffix
		}
		used[name] = true

		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeAfdelingSheet(f, name, exp, styles); err != nil {
			return nil, err
		}
	}

	if combined {
		if len(exports) == 0 {
			if err := f.SetSheetName("Sheet1", combinedSheetName); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(combinedSheetName); err != nil {
			return nil, err
		}
		if err := writeCombinedSheet(f, exports, styles); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var exportHeaders = []string{"Bilagnr.", "Bank dato", "Tekst", "Formål", "Beløb", "Type"}

func writeAfdelingSheet(f *excelize.File, sheet string, exp afdelingExport, styles sheetStyles) error {
	widths := newColumnWidths(len(exportHeaders))

	if err := writeRow(f, sheet, 1, widths, "Startsaldo", "", "", "", exp.Startsaldo.InexactFloat64(), ""); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(exportHeaders), styles.bold); err != nil {
		return err
	}

	// Row 2 stays blank.
	headerRow := 3
	if err := writeRow(f, sheet, headerRow, widths, toAnySlice(exportHeaders)...); err != nil {
		return err
	}
	if err := styleRow(f, sheet, headerRow, len(exportHeaders), styles.header); err != nil {
		return err
	}

	row := headerRow + 1
	for _, t := range exp.Transactions {
		err := writeRow(f, sheet, row, widths,
			t.Bilagnr,
			t.BankDato.Format(domain.BankDatoLayout),
			t.Tekst,
			t.Formaal,
			t.Beloeb.InexactFloat64(),
			string(t.Type),
		)
		if err != nil {
			return err
		}
		row++
	}

	// Blank row, then the derived balance.
	row++
	if err := writeRow(f, sheet, row, widths, "Aktuel saldo", "", "", "", exp.Saldo.InexactFloat64(), ""); err != nil {
		return err
	}
	if err := styleRow(f, sheet, row, len(exportHeaders), styles.saldo); err != nil {
		return err
	}

	return applyColumnWidths(f, sheet, widths)
}

var combinedHeaders = []string{"Hold", "Bilagnr.", "Bank dato", "Tekst", "Formål", "Beløb", "Type"}

// combinedRow pairs a transaction with its department name for global sorting.
type combinedRow struct {
	Navn string
	Txn  domain.Transaction
}

// writeCombinedSheet lists every department's entries in one sheet, tagged
// with the department name and globally sorted by bank date. No summary rows;
// the per-department sheets carry those.
func writeCombinedSheet(f *excelize.File, exports []afdelingExport, styles sheetStyles) error {
	rows := []combinedRow{}
	for _, exp := range exports {
		for _, t := range exp.Transactions {
			rows = append(rows, combinedRow{Navn: exp.Navn, Txn: t})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Txn.BankDato.Before(rows[j].Txn.BankDato)
	})

	widths := newColumnWidths(len(combinedHeaders))
	if err := writeRow(f, combinedSheetName, 1, widths, toAnySlice(combinedHeaders)...); err != nil {
		return err
	}
	if err := styleRow(f, combinedSheetName, 1, len(combinedHeaders), styles.header); err != nil {
		return err
	}

	row := 2
	for _, r := range rows {
		err := writeRow(f, combinedSheetName, row, widths,
			r.Navn,
			r.Txn.Bilagnr,
			r.Txn.BankDato.Format(domain.BankDatoLayout),
			r.Txn.Tekst,
			r.Txn.Formaal,
			r.Txn.Beloeb.InexactFloat64(),
			string(r.Txn.Type),
		)
		if err != nil {
			return err
		}
		row++
	}

	return applyColumnWidths(f, combinedSheetName, widths)
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func newColumnWidths(n int) []float64 {
	return make([]float64, n)
}

func writeRow(f *excelize.File, sheet string, row int, widths []float64, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if w := float64(len(fmt.Sprintf("%v", v))); col < len(widths) && w > widths[col] {
			widths[col] = w
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row int, cols int, styleID int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, styleID)
}

// applyColumnWidths fits each column to its longest content plus padding,
// capped so a runaway description does not blow up the layout.
func applyColumnWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := w + 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

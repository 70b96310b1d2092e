package services

import (
	"context"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// ExportSvcFacade renders ledger data to a spreadsheet.
type ExportSvcFacade interface {
	// ExportExcel builds the .xlsx workbook in memory and returns its bytes
	// with the download filename. An afdeling caller exports its own sheet;
	// an admin caller without afdelingID gets one sheet per department plus
	// the combined sheet.
	ExportExcel(ctx context.Context, actor domain.User, afdelingID string, regnskabsaar string) ([]byte, string, error)
}

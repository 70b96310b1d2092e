package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportHandler handles spreadsheet export requests.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
	userService   portssvc.UserSvcFacade
}

func newExportHandler(es portssvc.ExportSvcFacade, us portssvc.UserSvcFacade) *exportHandler {
	return &exportHandler{exportService: es, userService: us}
}

func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade, userService portssvc.UserSvcFacade) {
	h := newExportHandler(exportService, userService)
	rg.GET("/export/excel", h.exportExcel)
}

// exportExcel godoc
// @Summary Export ledger to Excel
// @Description Builds the xlsx workbook: one sheet per department (admin without filter also gets the combined sheet) and returns it as an attachment.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param afdeling_id query string false "Department filter (admin only)"
// @Param regnskabsaar query string false "Accounting year filter"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /export/excel [get]
func (h *exportHandler) exportExcel(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	data, filename, err := h.exportService.ExportExcel(c.Request.Context(), *actor,
		c.Query("afdeling_id"), c.Query("regnskabsaar"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

// maxReceiptSize caps uploaded receipt files at 10 MB.
const maxReceiptSize = 10 << 20

// transactionHandler handles ledger entry requests.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	userService        portssvc.UserSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, us portssvc.UserSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts, userService: us}
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, userService portssvc.UserSvcFacade) {
	h := newTransactionHandler(transactionService, userService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)

		transactions.POST("/:id/upload", h.uploadReceipt)
		transactions.GET("/:id/receipts", h.listReceipts)
		transactions.DELETE("/:id/receipts/:fileID", h.deleteReceipt)
	}
}

// createTransaction godoc
// @Summary Create ledger entry
// @Description Creates a ledger entry for the acting department. The voucher number is assigned server-side.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.SaveTransactionRequest true "Entry details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	var req dto.SaveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	created, err := h.transactionService.CreateTransaction(c.Request.Context(), *actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(created))
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Lists entries scoped to the caller's role. Admin may filter by afdeling_id and regnskabsaar.
// @Tags transactions
// @Produce json
// @Param afdeling_id query string false "Department filter (admin only)"
// @Param regnskabsaar query string false "Accounting year filter"
// @Success 200 {array} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	txns, err := h.transactionService.ListTransactions(c.Request.Context(), *actor,
		c.Query("afdeling_id"), c.Query("regnskabsaar"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponseList(txns))
}

// getTransaction godoc
// @Summary Get ledger entry
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), *actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update ledger entry
// @Description Rewrites the mutable fields; bilagnr and regnskabsaar are preserved.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.SaveTransactionRequest true "Entry details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	var req dto.SaveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	updated, err := h.transactionService.UpdateTransaction(c.Request.Context(), *actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(updated))
}

// deleteTransaction godoc
// @Summary Delete ledger entry
// @Description Deletes an entry. Its voucher number is never reused.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), *actor, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// uploadReceipt godoc
// @Summary Upload receipt
// @Description Archives a receipt for the entry in the caller's Google Drive and records the reference.
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Transaction ID"
// @Param file formData file true "Receipt file"
// @Success 200 {object} dto.UploadReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Drive session expired"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/upload [post]
func (h *transactionHandler) uploadReceipt(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing file in form data"})
		return
	}
	if fileHeader.Size > maxReceiptSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File too large (max 10 MB)"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file"})
		return
	}

	uploaded, err := h.transactionService.UploadReceipt(c.Request.Context(), *actor, c.Param("id"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadReceiptResponse{Success: true, File: *uploaded})
}

// listReceipts godoc
// @Summary List receipts
// @Description Lists the archived receipt files for the entry's department/year folder.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {array} domain.DriveFile
// @Failure 400 {object} ErrorResponse "Drive not connected"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/receipts [get]
func (h *transactionHandler) listReceipts(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	files, err := h.transactionService.ListReceipts(c.Request.Context(), *actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// deleteReceipt godoc
// @Summary Delete receipt
// @Description Removes an archived receipt. A Drive-side failure degrades to success=false.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Param fileID path string true "Drive file ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/receipts/{fileID} [delete]
func (h *transactionHandler) deleteReceipt(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	removed, err := h.transactionService.DeleteReceipt(c.Request.Context(), *actor, c.Param("id"), c.Param("fileID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: removed})
}

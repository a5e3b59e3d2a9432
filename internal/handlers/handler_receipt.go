package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/SscSPs/institute_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// receiptHandler handles HTTP requests for student payments.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{receiptService: rs}
}

func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(receiptService)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listReceipts)
		receipts.GET("/:receiptID", h.getReceipt)
		receipts.POST("/:receiptID/journal-entry", h.createReceiptEntry)
		receipts.POST("/:receiptID/reverse", h.reverseReceipt)
	}
}

// createReceipt godoc
// @Summary Record a student payment
// @Description Issues a receipt number, posts Dr cash / Cr receivable and closes the enrollment once fully paid
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receipt body dto.CreateReceiptRequest true "Payment details"
// @Success 201 {object} domain.Receipt
// @Failure 400 {object} map[string]string "Invalid input or payment exceeds the amount due"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Enrollment not found"
// @Failure 409 {object} map[string]string "Enrollment withdrawn"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.Int64("student_id", req.Student.ID))
	logger.Info("Received payment", slog.String("paid_amount", req.PaidAmount.String()))

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Receipt created", slog.String("receipt_number", receipt.ReceiptNumber))
	c.JSON(http.StatusCreated, receipt)
}

// listReceipts godoc
// @Summary List receipts
// @Tags receipts
// @Produce  json
// @Param   studentID query int false "Student filter"
// @Param   enrollmentID query string false "Enrollment filter"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} domain.Receipt
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list receipts"
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	var params dto.ListReceiptsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListReceipts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	receipts, err := h.receiptService.ListReceipts(c.Request.Context(), params.ToDomain())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list receipts")
		return
	}

	c.JSON(http.StatusOK, receipts)
}

// getReceipt godoc
// @Summary Get a receipt
// @Tags receipts
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Success 200 {object} domain.Receipt
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 500 {object} map[string]string "Failed to retrieve receipt"
// @Security BearerAuth
// @Router /receipts/{receiptID} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), receiptID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("receipt_id", receiptID)), err, "Failed to retrieve receipt")
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// createReceiptEntry godoc
// @Summary Post the journal entry of a receipt
// @Description Posts Dr cash / Cr receivable for a receipt that has none. Returns the existing entry otherwise.
// @Tags receipts
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Payment exceeds the amount due"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 500 {object} map[string]string "Failed to post receipt entry"
// @Security BearerAuth
// @Router /receipts/{receiptID}/journal-entry [post]
func (h *receiptHandler) createReceiptEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("receipt_id", receiptID), slog.String("user_id", userID))
	entry, err := h.receiptService.CreateAccrualJournalEntry(c.Request.Context(), receiptID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post receipt entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseReceipt godoc
// @Summary Reverse a receipt
// @Description Reverses the receipt's payment entry. The payment stops counting toward the amount due and the enrollment reopens.
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Param   reversal body dto.ReverseEntryRequest false "Optional description"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 409 {object} map[string]string "Receipt has no entry or was already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse receipt"
// @Security BearerAuth
// @Router /receipts/{receiptID}/reverse [post]
func (h *receiptHandler) reverseReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	var req dto.ReverseEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ReverseReceipt", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("receipt_id", receiptID), slog.String("user_id", userID))
	reversal, err := h.receiptService.ReverseReceipt(c.Request.Context(), receiptID, userID, req.Description)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reverse receipt")
		return
	}

	logger.Info("Receipt reversed", slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

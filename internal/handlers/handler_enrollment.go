package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/SscSPs/institute_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// enrollmentHandler handles HTTP requests for the enrollment lifecycle.
type enrollmentHandler struct {
	enrollmentService portssvc.EnrollmentSvcFacade
}

func newEnrollmentHandler(es portssvc.EnrollmentSvcFacade) *enrollmentHandler {
	return &enrollmentHandler{enrollmentService: es}
}

// registerEnrollmentRoutes registers routes related to enrollments.
func registerEnrollmentRoutes(rg *gin.RouterGroup, enrollmentService portssvc.EnrollmentSvcFacade) {
	h := newEnrollmentHandler(enrollmentService)

	enrollments := rg.Group("/enrollments")
	{
		enrollments.POST("", h.createEnrollment)
		enrollments.GET("", h.listEnrollments)
		enrollments.GET("/:enrollmentID", h.getEnrollment)
		enrollments.GET("/:enrollmentID/ar-balance", h.getARBalance)
		enrollments.POST("/:enrollmentID/opening-entry", h.postOpeningEntry)
		enrollments.POST("/:enrollmentID/withdraw", h.withdrawEnrollment)
		enrollments.POST("/:enrollmentID/complete", h.completeEnrollment)
	}
}

// createEnrollment godoc
// @Summary Enroll a student in a course
// @Description Creates the enrollment, its receivable and deferred revenue accounts, and posts the opening entry
// @Tags enrollments
// @Accept  json
// @Produce  json
// @Param   enrollment body dto.CreateEnrollmentRequest true "Enrollment details"
// @Success 201 {object} domain.Enrollment
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create enrollment"
// @Security BearerAuth
// @Router /enrollments [post]
func (h *enrollmentHandler) createEnrollment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEnrollment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.Int64("student_id", req.Student.ID), slog.Int64("course_id", req.Course.ID))
	enrollment, err := h.enrollmentService.CreateEnrollment(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create enrollment")
		return
	}

	logger.Info("Enrollment created", slog.String("enrollment_id", enrollment.EnrollmentID))
	c.JSON(http.StatusCreated, enrollment)
}

// listEnrollments godoc
// @Summary List enrollments
// @Tags enrollments
// @Produce  json
// @Param   studentID query int false "Student filter"
// @Param   courseID query int false "Course filter"
// @Param   open query bool false "Only enrollments that are not closed"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} domain.Enrollment
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list enrollments"
// @Security BearerAuth
// @Router /enrollments [get]
func (h *enrollmentHandler) listEnrollments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	var params dto.ListEnrollmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEnrollments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	enrollments, err := h.enrollmentService.ListEnrollments(c.Request.Context(), params.ToDomain())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list enrollments")
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// getEnrollment godoc
// @Summary Get an enrollment
// @Tags enrollments
// @Produce  json
// @Param   enrollmentID path string true "Enrollment ID"
// @Success 200 {object} domain.Enrollment
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Enrollment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve enrollment"
// @Security BearerAuth
// @Router /enrollments/{enrollmentID} [get]
func (h *enrollmentHandler) getEnrollment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enrollmentID := c.Param("enrollmentID")
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	enrollment, err := h.enrollmentService.GetEnrollment(c.Request.Context(), enrollmentID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("enrollment_id", enrollmentID)), err, "Failed to retrieve enrollment")
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// getARBalance godoc
// @Summary Get the receivable of an enrollment
// @Description Live balance of the enrollment's AR account, debits minus credits
// @Tags enrollments
// @Produce  json
// @Param   enrollmentID path string true "Enrollment ID"
// @Success 200 {object} dto.ARBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Enrollment not found"
// @Failure 500 {object} map[string]string "Failed to compute receivable"
// @Security BearerAuth
// @Router /enrollments/{enrollmentID}/ar-balance [get]
func (h *enrollmentHandler) getARBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enrollmentID := c.Param("enrollmentID")
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	logger = logger.With(slog.String("enrollment_id", enrollmentID))
	enrollment, err := h.enrollmentService.GetEnrollment(c.Request.Context(), enrollmentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute receivable")
		return
	}
	balance, err := h.enrollmentService.ARBalance(c.Request.Context(), enrollmentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute receivable")
		return
	}

	paid := enrollment.NetAmount.Sub(balance)
	if enrollment.OpeningEntryID == nil {
		paid = balance.Neg()
	}
	c.JSON(http.StatusOK, dto.ARBalanceResponse{
		EnrollmentID: enrollment.EnrollmentID,
		NetAmount:    enrollment.NetAmount,
		ARBalance:    balance,
		Paid:         paid,
		Closed:       enrollment.IsClosed(),
	})
}

// postOpeningEntry godoc
// @Summary Post the opening entry of an enrollment
// @Description Posts Dr receivable / Cr deferred revenue once. Returns 204 when nothing had to be posted.
// @Tags enrollments
// @Produce  json
// @Param   enrollmentID path string true "Enrollment ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Success 204 "Already posted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Enrollment not found"
// @Failure 409 {object} map[string]string "Enrollment withdrawn"
// @Failure 500 {object} map[string]string "Failed to post opening entry"
// @Security BearerAuth
// @Router /enrollments/{enrollmentID}/opening-entry [post]
func (h *enrollmentHandler) postOpeningEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enrollmentID := c.Param("enrollmentID")
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("enrollment_id", enrollmentID), slog.String("user_id", userID))
	entry, err := h.enrollmentService.PostOpeningEntry(c.Request.Context(), enrollmentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post opening entry")
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Opening entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// withdrawEnrollment godoc
// @Summary Withdraw a student from a course
// @Description Reverses the unpaid receivable and the deferred revenue, and books the refund. The refund defaults to everything paid.
// @Tags enrollments
// @Accept  json
// @Produce  json
// @Param   enrollmentID path string true "Enrollment ID"
// @Param   withdrawal body dto.WithdrawEnrollmentRequest false "Refund and reason"
// @Success 200 {object} domain.Withdrawal
// @Failure 400 {object} map[string]string "Invalid input or refund above paid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Enrollment not found"
// @Failure 409 {object} map[string]string "Enrollment already withdrawn or completed"
// @Failure 500 {object} map[string]string "Failed to withdraw enrollment"
// @Security BearerAuth
// @Router /enrollments/{enrollmentID}/withdraw [post]
func (h *enrollmentHandler) withdrawEnrollment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enrollmentID := c.Param("enrollmentID")

	var req dto.WithdrawEnrollmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for WithdrawEnrollment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("enrollment_id", enrollmentID), slog.String("user_id", userID))
	withdrawal, err := h.enrollmentService.Withdraw(c.Request.Context(), enrollmentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to withdraw enrollment")
		return
	}

	logger.Info("Enrollment withdrawn", slog.String("refund", withdrawal.RefundedAmount.String()))
	c.JSON(http.StatusOK, withdrawal)
}

// completeEnrollment godoc
// @Summary Complete an enrollment
// @Description Recognizes the deferred revenue as earned
// @Tags enrollments
// @Produce  json
// @Param   enrollmentID path string true "Enrollment ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Enrollment not found"
// @Failure 409 {object} map[string]string "Enrollment withdrawn or already completed"
// @Failure 500 {object} map[string]string "Failed to complete enrollment"
// @Security BearerAuth
// @Router /enrollments/{enrollmentID}/complete [post]
func (h *enrollmentHandler) completeEnrollment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enrollmentID := c.Param("enrollmentID")
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("enrollment_id", enrollmentID), slog.String("user_id", userID))
	entry, err := h.enrollmentService.CompleteEnrollment(c.Request.Context(), enrollmentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to complete enrollment")
		return
	}

	logger.Info("Enrollment completed", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

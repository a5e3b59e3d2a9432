package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/SscSPs/institute_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests for expenses and employee advances.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
	advanceService portssvc.AdvanceSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade, as portssvc.AdvanceSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es, advanceService: as}
}

// registerExpenseRoutes registers the expense and advance routes.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, advanceService portssvc.AdvanceSvcFacade) {
	h := newExpenseHandler(expenseService, advanceService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
	}

	advances := rg.Group("/advances")
	{
		advances.POST("", h.createAdvance)
		advances.GET("", h.listAdvances)
		advances.GET("/:advanceID", h.getAdvance)
		advances.POST("/:advanceID/repayments", h.createRepayment)
	}
}

// createExpense godoc
// @Summary Book an expense
// @Description Records the expense and posts Dr expense / Cr cash. Salaries go to a per-person account.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} domain.ExpenseEntry
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to book expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("category", string(req.Category)))
	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to book expense")
		return
	}

	logger.Info("Expense booked", slog.String("reference", expense.Reference))
	c.JSON(http.StatusCreated, expense)
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce  json
// @Param   category query string false "Category filter"
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} domain.ExpenseEntry
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), params.ToDomain())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} domain.ExpenseEntry
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), expenseID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("expense_id", expenseID)), err, "Failed to retrieve expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// createAdvance godoc
// @Summary Pay an employee advance
// @Description Records the advance and posts Dr advances / Cr cash
// @Tags advances
// @Accept  json
// @Produce  json
// @Param   advance body dto.CreateAdvanceRequest true "Advance details"
// @Success 201 {object} domain.Advance
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to pay advance"
// @Security BearerAuth
// @Router /advances [post]
func (h *expenseHandler) createAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAdvance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.Int64("employee_id", req.Employee.ID))
	advance, err := h.advanceService.CreateAdvance(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to pay advance")
		return
	}

	logger.Info("Advance paid", slog.String("reference", advance.Reference))
	c.JSON(http.StatusCreated, advance)
}

// listAdvances godoc
// @Summary List employee advances
// @Tags advances
// @Produce  json
// @Param   employeeID query int false "Employee filter"
// @Param   open query bool false "Only advances with an outstanding amount"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} domain.Advance
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list advances"
// @Security BearerAuth
// @Router /advances [get]
func (h *expenseHandler) listAdvances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	var params dto.ListAdvancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAdvances", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	advances, err := h.advanceService.ListAdvances(c.Request.Context(), params.ToDomain())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list advances")
		return
	}

	c.JSON(http.StatusOK, advances)
}

// getAdvance godoc
// @Summary Get an advance with its repayments
// @Tags advances
// @Produce  json
// @Param   advanceID path string true "Advance ID"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Advance not found"
// @Failure 500 {object} map[string]string "Failed to retrieve advance"
// @Security BearerAuth
// @Router /advances/{advanceID} [get]
func (h *expenseHandler) getAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	advanceID := c.Param("advanceID")
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	advance, repayments, err := h.advanceService.GetAdvance(c.Request.Context(), advanceID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("advance_id", advanceID)), err, "Failed to retrieve advance")
		return
	}

	c.JSON(http.StatusOK, dto.AdvanceResponse{
		Advance:     *advance,
		Outstanding: advance.Outstanding(),
		Repayments:  repayments,
	})
}

// createRepayment godoc
// @Summary Record an advance repayment
// @Description Posts Dr cash / Cr advances. A repayment may not exceed the outstanding amount.
// @Tags advances
// @Accept  json
// @Produce  json
// @Param   advanceID path string true "Advance ID"
// @Param   repayment body dto.CreateRepaymentRequest true "Repayment details"
// @Success 201 {object} domain.Repayment
// @Failure 400 {object} map[string]string "Invalid input or repayment exceeds outstanding"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Advance not found"
// @Failure 409 {object} map[string]string "Advance was never disbursed"
// @Failure 500 {object} map[string]string "Failed to record repayment"
// @Security BearerAuth
// @Router /advances/{advanceID}/repayments [post]
func (h *expenseHandler) createRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	advanceID := c.Param("advanceID")
	var req dto.CreateRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRepayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("advance_id", advanceID), slog.String("user_id", userID))
	repayment, err := h.advanceService.CreateRepayment(c.Request.Context(), advanceID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record repayment")
		return
	}

	logger.Info("Repayment recorded", slog.String("reference", repayment.Reference))
	c.JSON(http.StatusCreated, repayment)
}

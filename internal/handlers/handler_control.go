package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/SscSPs/institute_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// controlHandler handles the ledger control registries: cost centers,
// accounting periods with their budgets, and discount rules.
type controlHandler struct {
	costCenterService   portssvc.CostCenterSvcFacade
	periodService       portssvc.PeriodSvcFacade
	discountRuleService portssvc.DiscountRuleSvcFacade
}

func newControlHandler(cs portssvc.CostCenterSvcFacade, ps portssvc.PeriodSvcFacade, ds portssvc.DiscountRuleSvcFacade) *controlHandler {
	return &controlHandler{costCenterService: cs, periodService: ps, discountRuleService: ds}
}

// registerControlRoutes registers the cost center, period, budget and discount rule routes.
func registerControlRoutes(rg *gin.RouterGroup, cs portssvc.CostCenterSvcFacade, ps portssvc.PeriodSvcFacade, ds portssvc.DiscountRuleSvcFacade) {
	h := newControlHandler(cs, ps, ds)

	costCenters := rg.Group("/cost-centers")
	{
		costCenters.POST("", h.createCostCenter)
		costCenters.GET("", h.listCostCenters)
		costCenters.GET("/:code", h.getCostCenter)
		costCenters.POST("/:code/deactivate", h.deactivateCostCenter)
	}

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/current", h.currentPeriod)
		periods.GET("/:periodID", h.getPeriod)
		periods.POST("/:periodID/close", h.closePeriod)
		periods.GET("/:periodID/budgets", h.listBudgets)
	}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("/:budgetID", h.getBudget)
	}

	rules := rg.Group("/discount-rules")
	{
		rules.POST("", h.createDiscountRule)
		rules.GET("", h.listDiscountRules)
		rules.GET("/:ruleID", h.getDiscountRule)
		rules.POST("/:ruleID/deactivate", h.deactivateDiscountRule)
	}
}

// createCostCenter godoc
// @Summary Register a cost center
// @Tags cost-centers
// @Accept  json
// @Produce  json
// @Param   costCenter body dto.CreateCostCenterRequest true "Cost center"
// @Success 201 {object} domain.CostCenter
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Code already registered"
// @Security BearerAuth
// @Router /cost-centers [post]
func (h *controlHandler) createCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCostCenter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	center, err := h.costCenterService.CreateCostCenter(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("code", req.Code)), err, "Failed to create cost center")
		return
	}
	c.JSON(http.StatusCreated, center)
}

// listCostCenters godoc
// @Summary List cost centers
// @Tags cost-centers
// @Produce  json
// @Param   activeOnly query bool false "Hide deactivated cost centers"
// @Success 200 {array} domain.CostCenter
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /cost-centers [get]
func (h *controlHandler) listCostCenters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}
	var params dto.ListActiveParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	centers, err := h.costCenterService.ListCostCenters(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list cost centers")
		return
	}
	c.JSON(http.StatusOK, centers)
}

// getCostCenter godoc
// @Summary Get a cost center
// @Tags cost-centers
// @Produce  json
// @Param   code path string true "Cost center code"
// @Success 200 {object} domain.CostCenter
// @Failure 404 {object} map[string]string "Cost center not found"
// @Security BearerAuth
// @Router /cost-centers/{code} [get]
func (h *controlHandler) getCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}
	center, err := h.costCenterService.GetCostCenter(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve cost center")
		return
	}
	c.JSON(http.StatusOK, center)
}

// deactivateCostCenter godoc
// @Summary Deactivate a cost center
// @Description New journal lines can no longer be tagged with it
// @Tags cost-centers
// @Produce  json
// @Param   code path string true "Cost center code"
// @Success 200 {object} domain.CostCenter
// @Failure 404 {object} map[string]string "Cost center not found"
// @Security BearerAuth
// @Router /cost-centers/{code}/deactivate [post]
func (h *controlHandler) deactivateCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	center, err := h.costCenterService.DeactivateCostCenter(c.Request.Context(), c.Param("code"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate cost center")
		return
	}
	c.JSON(http.StatusOK, center)
}

// createPeriod godoc
// @Summary Create an accounting period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period"
// @Success 201 {object} domain.AccountingPeriod
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /periods [post]
func (h *controlHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create accounting period")
		return
	}
	logger.Info("Accounting period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, period)
}

// listPeriods godoc
// @Summary List accounting periods
// @Tags periods
// @Produce  json
// @Success 200 {array} domain.AccountingPeriod
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /periods [get]
func (h *controlHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}
	periods, err := h.periodService.ListPeriods(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accounting periods")
		return
	}
	c.JSON(http.StatusOK, periods)
}

// currentPeriod godoc
// @Summary Find the period covering a date
// @Tags periods
// @Produce  json
// @Param   date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.AccountingPeriod
// @Failure 404 {object} map[string]string "No period covers the date"
// @Security BearerAuth
// @Router /periods/current [get]
func (h *controlHandler) currentPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}
	var params dto.CurrentPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	at := time.Now().UTC()
	if params.Date != nil {
		at = *params.Date
	}

	period, err := h.periodService.CurrentPeriod(c.Request.Context(), at)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to find accounting period")
		return
	}
	c.JSON(http.StatusOK, period)
}

// getPeriod godoc
// @Summary Get an accounting period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} domain.AccountingPeriod
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /periods/{periodID} [get]
func (h *controlHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}
	period, err := h.periodService.GetPeriod(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve accounting period")
		return
	}
	c.JSON(http.StatusOK, period)
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Entries dated inside a closed period can no longer be posted
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} domain.AccountingPeriod
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already closed"
// @Security BearerAuth
// @Router /periods/{periodID}/close [post]
func (h *controlHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("period_id", periodID))
	period, err := h.periodService.ClosePeriod(c.Request.Context(), periodID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to close accounting period")
		return
	}
	logger.Info("Accounting period closed")
	c.JSON(http.StatusOK, period)
}

// listBudgets godoc
// @Summary Budget versus actual for a period
// @Tags budgets
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {array} domain.BudgetReport
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /periods/{periodID}/budgets [get]
func (h *controlHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}
	reports, err := h.periodService.ListBudgets(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list budgets")
		return
	}
	c.JSON(http.StatusOK, reports)
}

// createBudget godoc
// @Summary Budget an account for a period
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} domain.BudgetReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Account already budgeted for the period"
// @Security BearerAuth
// @Router /budgets [post]
func (h *controlHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	report, err := h.periodService.CreateBudget(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("account_id", req.AccountID)), err, "Failed to create budget")
		return
	}
	c.JSON(http.StatusCreated, report)
}

// getBudget godoc
// @Summary Get a budget with its actual and variance
// @Tags budgets
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Success 200 {object} domain.BudgetReport
// @Failure 404 {object} map[string]string "Budget not found"
// @Security BearerAuth
// @Router /budgets/{budgetID} [get]
func (h *controlHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}
	report, err := h.periodService.GetBudget(c.Request.Context(), c.Param("budgetID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve budget")
		return
	}
	c.JSON(http.StatusOK, report)
}

// createDiscountRule godoc
// @Summary Create a discount rule
// @Tags discount-rules
// @Accept  json
// @Produce  json
// @Param   rule body dto.CreateDiscountRuleRequest true "Discount rule"
// @Success 201 {object} domain.DiscountRule
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Reason already used"
// @Security BearerAuth
// @Router /discount-rules [post]
func (h *controlHandler) createDiscountRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDiscountRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	rule, err := h.discountRuleService.CreateDiscountRule(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create discount rule")
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// listDiscountRules godoc
// @Summary List discount rules
// @Tags discount-rules
// @Produce  json
// @Param   activeOnly query bool false "Hide deactivated rules"
// @Success 200 {array} domain.DiscountRule
// @Security BearerAuth
// @Router /discount-rules [get]
func (h *controlHandler) listDiscountRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}
	var params dto.ListActiveParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rules, err := h.discountRuleService.ListDiscountRules(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list discount rules")
		return
	}
	c.JSON(http.StatusOK, rules)
}

// getDiscountRule godoc
// @Summary Get a discount rule
// @Tags discount-rules
// @Produce  json
// @Param   ruleID path string true "Rule ID"
// @Success 200 {object} domain.DiscountRule
// @Failure 404 {object} map[string]string "Rule not found"
// @Security BearerAuth
// @Router /discount-rules/{ruleID} [get]
func (h *controlHandler) getDiscountRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}
	rule, err := h.discountRuleService.GetDiscountRule(c.Request.Context(), c.Param("ruleID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve discount rule")
		return
	}
	c.JSON(http.StatusOK, rule)
}

// deactivateDiscountRule godoc
// @Summary Deactivate a discount rule
// @Tags discount-rules
// @Produce  json
// @Param   ruleID path string true "Rule ID"
// @Success 200 {object} domain.DiscountRule
// @Failure 404 {object} map[string]string "Rule not found"
// @Security BearerAuth
// @Router /discount-rules/{ruleID}/deactivate [post]
func (h *controlHandler) deactivateDiscountRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}
	rule, err := h.discountRuleService.DeactivateDiscountRule(c.Request.Context(), c.Param("ruleID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate discount rule")
		return
	}
	c.JSON(http.StatusOK, rule)
}

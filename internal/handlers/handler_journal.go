package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/SscSPs/institute_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournalEntry)
		journals.GET("", h.listJournalEntries)
		journals.GET("/:entryID", h.getJournalEntry)
		journals.POST("/:entryID/post", h.postJournalEntry)
		journals.POST("/:entryID/reverse", h.reverseJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Stores a draft entry, or creates and posts it in one step when post is true.
// @Description Posted entries must balance and have at least one debit and one credit line.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalEntryRequest true "Journal entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Reference already used"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to create journal entry", slog.Int("lines", len(req.Lines)), slog.Bool("post", req.Post))

	var (
		entry *domain.JournalEntry
		err   error
	)
	if req.Post {
		entry, err = h.journalService.CreateAndPost(c.Request.Context(), req.ToNewEntry(), userID)
	} else {
		entry, err = h.journalService.CreateEntry(c.Request.Context(), req.ToNewEntry(), userID)
	}
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("reference", entry.Reference))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first using token based pagination
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Param   entryType query string false "Entry type filter"
// @Param   posted query bool false "Posted filter"
// @Param   from query string false "First entry date (YYYY-MM-DD)"
// @Param   to query string false "Last entry date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Returns an entry together with its transaction lines
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Journal entry ID"
// @Success 200 {object} dto.GetJournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journals/{entryID} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	if _, ok := actingUser(c, logger); !ok {
		return
	}

	logger = logger.With(slog.String("entry_id", entryID))
	entry, txns, err := h.journalService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.GetJournalEntryResponse{
		Entry:        dto.ToJournalEntryResponse(entry),
		Transactions: dto.ToTransactionResponses(txns),
	})
}

// postJournalEntry godoc
// @Summary Post a draft journal entry
// @Description Validates the draft and applies every line to the cached balances. Posting twice is a conflict.
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Entry does not balance or uses an inactive account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Journal entry already posted"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /journals/{entryID}/post [post]
func (h *journalHandler) postJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("user_id", userID))
	entry, err := h.journalService.PostEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted")
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseJournalEntry godoc
// @Summary Reverse a posted journal entry
// @Description Posts a new entry with every line flipped. The original entry stays posted.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Journal entry ID"
// @Param   reversal body dto.ReverseEntryRequest false "Optional description"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry not posted or already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /journals/{entryID}/reverse [post]
func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ReverseEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ReverseJournalEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("user_id", userID))
	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), entryID, userID, req.Description)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed", slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/buildledger/internal/core/domain"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/SscSPs/buildledger/internal/middleware"
	"github.com/SscSPs/buildledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}
	write := middleware.RequireWriteAccess()

	entries := rg.Group("/journal-entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", write, h.createManualEntry)
		entries.POST("/automatic", write, h.createAutomaticEntry)
		entries.GET("/:id", h.getEntry)
		entries.DELETE("/:id", write, h.deleteEntry)
	}
}

// createManualEntry godoc
// @Summary Create a manual journal entry
// @Description Stores a balanced multi-line entry. The entry number is generated when omitted.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateManualEntryRequest true "Entry lines"
// @Success 201 {array} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Accounting disabled or read-only role"
// @Failure 409 {object} map[string]string "Entry number already used"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createManualEntry(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.CreateManualEntryRequest
	if !bindJSON(c, &req, "CreateManualEntry") {
		return
	}

	lines, err := h.journalService.CreateManualEntry(c.Request.Context(), session.OrganizationID, req, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryListResponse(lines))
}

// createAutomaticEntry godoc
// @Summary Create an automatic journal entry line
// @Description Records a single line generated by another module (invoices, payments, payroll)
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateAutomaticEntryRequest true "Entry line"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Accounting disabled or read-only role"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries/automatic [post]
func (h *journalHandler) createAutomaticEntry(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.CreateAutomaticEntryRequest
	if !bindJSON(c, &req, "CreateAutomaticEntry") {
		return
	}

	entry, err := h.journalService.CreateAutomaticEntry(c.Request.Context(), session.OrganizationID, req, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry line
// @Tags journal
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	entry, err := h.journalService.GetEntryByID(c.Request.Context(), session.OrganizationID, id)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entry lines
// @Description Lists lines newest first, filtered by account, entry number and date range
// @Tags journal
// @Produce  json
// @Param   accountID query string false "Account ID"
// @Param   entryNumber query string false "Entry number"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var params dto.ListJournalEntriesParams
	if !bindQuery(c, &params, "ListJournalEntries") {
		return
	}

	page, err := pagination.ParsePage(params.Limit, params.NextToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter := domain.JournalEntryFilter{
		AccountID:   params.AccountID,
		EntryNumber: params.EntryNumber,
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if filter.From, err = parseOptionalDate(params.From); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.To, err = parseOptionalDate(params.To); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), session.OrganizationID, filter)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryListResponse(entries),
		NextToken: pagination.NextToken(page, len(entries)),
	})
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Description Deletes one automatic line, or every line sharing the entry number of a manual entry
// @Tags journal
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.DeletedResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to delete journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.journalService.DeleteEntry(c.Request.Context(), session.OrganizationID, id)
	if err != nil {
		respondError(c, err, "Failed to delete journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry deleted", slog.Int64("lines", deleted))
	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: deleted})
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/buildledger/internal/core/domain"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/SscSPs/buildledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type checkHandler struct {
	checkService portssvc.CheckSvcFacade
}

func registerCheckRoutes(rg *gin.RouterGroup, checkService portssvc.CheckSvcFacade) {
	h := &checkHandler{checkService: checkService}
	write := middleware.RequireWriteAccess()

	checks := rg.Group("/checks")
	{
		checks.GET("", h.listChecks)
		checks.POST("", write, h.createCheck)
		checks.POST("/process-due", write, h.processDueChecks)
		checks.GET("/:id", h.getCheck)
		checks.POST("/:id/clear", write, h.clearCheck)
		checks.POST("/:id/reject", write, h.rejectCheck)
	}
}

// createCheck godoc
// @Summary Register a check
// @Description Received checks start PENDING, issued checks start ISSUED. No balance moves until the check clears.
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   check body dto.CreateCheckRequest true "Check details"
// @Success 201 {object} domain.Check
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Check number already registered"
// @Failure 500 {object} map[string]string "Failed to create check"
// @Security BearerAuth
// @Router /checks [post]
func (h *checkHandler) createCheck(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.CreateCheckRequest
	if !bindJSON(c, &req, "CreateCheck") {
		return
	}

	check, err := h.checkService.CreateCheck(c.Request.Context(), session.OrganizationID, req, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to create check")
		return
	}
	c.JSON(http.StatusCreated, check)
}

// getCheck godoc
// @Summary Get a check
// @Tags checks
// @Produce  json
// @Param   id path string true "Check ID"
// @Success 200 {object} domain.Check
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check not found"
// @Failure 500 {object} map[string]string "Failed to retrieve check"
// @Security BearerAuth
// @Router /checks/{id} [get]
func (h *checkHandler) getCheck(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	check, err := h.checkService.GetCheckByID(c.Request.Context(), session.OrganizationID, id)
	if err != nil {
		respondError(c, err, "Failed to retrieve check")
		return
	}
	c.JSON(http.StatusOK, check)
}

// listChecks godoc
// @Summary List checks
// @Tags checks
// @Produce  json
// @Param   status query string false "Status filter" Enums(ISSUED, PENDING, CLEARED, REJECTED)
// @Param   dueBefore query string false "Due on or before (YYYY-MM-DD)"
// @Success 200 {array} domain.Check
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list checks"
// @Security BearerAuth
// @Router /checks [get]
func (h *checkHandler) listChecks(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var params dto.ListChecksParams
	if !bindQuery(c, &params, "ListChecks") {
		return
	}

	var filter domain.CheckFilter
	if params.Status != "" {
		status := domain.CheckStatus(params.Status)
		filter.Status = &status
	}
	dueBefore, err := parseOptionalDate(params.DueBefore)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.DueBefore = dueBefore

	checks, err := h.checkService.ListChecks(c.Request.Context(), session.OrganizationID, filter)
	if err != nil {
		respondError(c, err, "Failed to list checks")
		return
	}
	if checks == nil {
		checks = []domain.Check{}
	}
	c.JSON(http.StatusOK, checks)
}

// clearCheck godoc
// @Summary Clear a check
// @Description Marks the check CLEARED and applies its amount to the instrument balance in one transaction
// @Tags checks
// @Produce  json
// @Param   id path string true "Check ID"
// @Success 200 {object} domain.Check
// @Failure 400 {object} map[string]string "Check cannot be cleared from its current status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check not found"
// @Failure 409 {object} map[string]string "Check already cleared"
// @Failure 500 {object} map[string]string "Failed to clear check"
// @Security BearerAuth
// @Router /checks/{id}/clear [post]
func (h *checkHandler) clearCheck(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	check, err := h.checkService.ClearCheck(c.Request.Context(), session.OrganizationID, id, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to clear check")
		return
	}
	c.JSON(http.StatusOK, check)
}

// rejectCheck godoc
// @Summary Reject a check
// @Tags checks
// @Produce  json
// @Param   id path string true "Check ID"
// @Success 200 {object} domain.Check
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check not found"
// @Failure 409 {object} map[string]string "Check already cleared"
// @Failure 500 {object} map[string]string "Failed to reject check"
// @Security BearerAuth
// @Router /checks/{id}/reject [post]
func (h *checkHandler) rejectCheck(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	check, err := h.checkService.RejectCheck(c.Request.Context(), session.OrganizationID, id, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to reject check")
		return
	}
	c.JSON(http.StatusOK, check)
}

// processDueChecks godoc
// @Summary Clear all due checks
// @Description Clears every PENDING check due on or before asOf (default today). Failures are reported per check.
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   request body dto.ProcessDueChecksRequest false "Sweep date"
// @Success 200 {object} dto.ProcessDueChecksResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to process due checks"
// @Failure 503 {object} dto.ProcessDueChecksResponse "Sweep interrupted, partial report"
// @Security BearerAuth
// @Router /checks/process-due [post]
func (h *checkHandler) processDueChecks(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.ProcessDueChecksRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req, "ProcessDueChecks") {
		return
	}
	asOf := req.AsOf.Time
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	report, err := h.checkService.ProcessDueChecks(c.Request.Context(), session.OrganizationID, asOf, session.UserID)
	if err != nil && report != nil {
		// Checks cleared before the interruption are committed; report them.
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Due check sweep interrupted",
			slog.Int("processed", len(report.Processed)),
			slog.String("error", err.Error()))
		resp := dto.ToProcessDueChecksResponse(report)
		resp.Error = "sweep interrupted"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	if err != nil {
		respondError(c, err, "Failed to process due checks")
		return
	}
	c.JSON(http.StatusOK, dto.ToProcessDueChecksResponse(report))
}

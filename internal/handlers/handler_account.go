package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/SscSPs/buildledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)
	write := middleware.RequireWriteAccess()

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", write, h.createAccount)
		accounts.POST("/setup", write, h.setupDefaultChart)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", write, h.updateAccount)
		accounts.DELETE("/:id", write, h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a ledger account in the caller's organization
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format, validation error or invalid parent"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Accounting disabled or read-only role"
// @Failure 409 {object} map[string]string "Duplicate account code"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req, "CreateAccount") {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("account_name", req.Name))

	account, err := h.accountService.CreateAccount(c.Request.Context(), session.OrganizationID, req, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// setupDefaultChart godoc
// @Summary Seed the default chart of accounts
// @Description Creates the standard construction chart of accounts; fails when the organization already has accounts
// @Tags accounts
// @Produce  json
// @Success 201 {array} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Accounting disabled or read-only role"
// @Failure 409 {object} map[string]string "Chart already exists"
// @Failure 500 {object} map[string]string "Failed to set up chart of accounts"
// @Security BearerAuth
// @Router /accounts/setup [post]
func (h *accountHandler) setupDefaultChart(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.SetupDefaultChart(c.Request.Context(), session.OrganizationID, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to set up chart of accounts")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListAccountResponse(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), session.OrganizationID, id)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Description Lists accounts ordered by code, optionally with parent and children attached
// @Tags accounts
// @Produce  json
// @Param   type query string false "Account type" Enums(ASSET, LIABILITY, EQUITY, INCOME, EXPENSE)
// @Param   isActive query bool false "Filter by active flag"
// @Param   includeChildren query bool false "Attach parent and direct children"
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if !bindQuery(c, &params, "ListAccounts") {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), session.OrganizationID, params.Filter())
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates name, sub type, description or active flag
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req, "UpdateAccount") {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	account, err := h.accountService.UpdateAccount(c.Request.Context(), session.OrganizationID, id, req, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Soft-deletes an account by clearing its active flag
// @Tags accounts
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account already inactive"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.accountService.DeactivateAccount(c.Request.Context(), session.OrganizationID, id, session.UserID); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

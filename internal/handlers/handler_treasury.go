package handlers

import (
	"net/http"

	"github.com/SscSPs/buildledger/internal/core/domain"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/SscSPs/buildledger/internal/middleware"
	"github.com/SscSPs/buildledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// treasuryHandler handles cash boxes, bank accounts, movements and balances.
type treasuryHandler struct {
	treasuryService portssvc.TreasurySvcFacade
}

func registerTreasuryRoutes(rg *gin.RouterGroup, treasuryService portssvc.TreasurySvcFacade) {
	h := &treasuryHandler{treasuryService: treasuryService}
	write := middleware.RequireWriteAccess()

	cashBoxes := rg.Group("/cash-boxes")
	{
		cashBoxes.GET("", h.listCashBoxes)
		cashBoxes.POST("", write, h.createCashBox)
		cashBoxes.DELETE("/:id", write, h.deactivateInstrument(domain.CashBoxInstrument))
	}

	bankAccounts := rg.Group("/bank-accounts")
	{
		bankAccounts.GET("", h.listBankAccounts)
		bankAccounts.POST("", write, h.createBankAccount)
		bankAccounts.DELETE("/:id", write, h.deactivateInstrument(domain.BankAccountInstrument))
	}

	treasury := rg.Group("/treasury")
	{
		treasury.GET("/balances", h.getBalances)
		treasury.GET("/movements", h.listMovements)
		treasury.POST("/movements", write, h.recordMovement)
	}
}

// createCashBox godoc
// @Summary Create a cash box
// @Tags treasury
// @Accept  json
// @Produce  json
// @Param   cashBox body dto.CreateCashBoxRequest true "Cash box details"
// @Success 201 {object} domain.CashBox
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create cash box"
// @Security BearerAuth
// @Router /cash-boxes [post]
func (h *treasuryHandler) createCashBox(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.CreateCashBoxRequest
	if !bindJSON(c, &req, "CreateCashBox") {
		return
	}

	box, err := h.treasuryService.CreateCashBox(c.Request.Context(), session.OrganizationID, req, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to create cash box")
		return
	}
	c.JSON(http.StatusCreated, box)
}

// listCashBoxes godoc
// @Summary List cash boxes
// @Tags treasury
// @Produce  json
// @Param   includeInactive query bool false "Include deactivated cash boxes"
// @Success 200 {array} domain.CashBox
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list cash boxes"
// @Security BearerAuth
// @Router /cash-boxes [get]
func (h *treasuryHandler) listCashBoxes(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var params dto.ListInstrumentsParams
	if !bindQuery(c, &params, "ListCashBoxes") {
		return
	}

	boxes, err := h.treasuryService.ListCashBoxes(c.Request.Context(), session.OrganizationID, params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list cash boxes")
		return
	}
	c.JSON(http.StatusOK, boxes)
}

// createBankAccount godoc
// @Summary Create a bank account
// @Tags treasury
// @Accept  json
// @Produce  json
// @Param   bankAccount body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} domain.BankAccount
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create bank account"
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *treasuryHandler) createBankAccount(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.CreateBankAccountRequest
	if !bindJSON(c, &req, "CreateBankAccount") {
		return
	}

	account, err := h.treasuryService.CreateBankAccount(c.Request.Context(), session.OrganizationID, req, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags treasury
// @Produce  json
// @Param   includeInactive query bool false "Include deactivated bank accounts"
// @Success 200 {array} domain.BankAccount
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bank accounts"
// @Security BearerAuth
// @Router /bank-accounts [get]
func (h *treasuryHandler) listBankAccounts(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var params dto.ListInstrumentsParams
	if !bindQuery(c, &params, "ListBankAccounts") {
		return
	}

	accounts, err := h.treasuryService.ListBankAccounts(c.Request.Context(), session.OrganizationID, params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// deactivateInstrument godoc
// @Summary Deactivate a cash box or bank account
// @Description Deactivated instruments keep their history but are excluded from global totals
// @Tags treasury
// @Param   id path string true "Instrument ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Instrument not found"
// @Failure 500 {object} map[string]string "Failed to deactivate instrument"
// @Security BearerAuth
// @Router /cash-boxes/{id} [delete]
// @Router /bank-accounts/{id} [delete]
func (h *treasuryHandler) deactivateInstrument(instrumentType domain.InstrumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}

		id, ok := pathID(c)
		if !ok {
			return
		}
		instrument := domain.Instrument{ID: id, Type: instrumentType}
		if err := h.treasuryService.DeactivateInstrument(c.Request.Context(), session.OrganizationID, instrument, session.UserID); err != nil {
			respondError(c, err, "Failed to deactivate instrument")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// recordMovement godoc
// @Summary Record a treasury movement
// @Description Records an income or expense against exactly one cash box or bank account
// @Tags treasury
// @Accept  json
// @Produce  json
// @Param   movement body dto.RecordMovementRequest true "Movement details"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} map[string]string "Invalid input or inactive instrument"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record movement"
// @Security BearerAuth
// @Router /treasury/movements [post]
func (h *treasuryHandler) recordMovement(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.RecordMovementRequest
	if !bindJSON(c, &req, "RecordMovement") {
		return
	}

	txn, err := h.treasuryService.RecordMovement(c.Request.Context(), session.OrganizationID, req, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to record movement")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// listMovements godoc
// @Summary List treasury movements
// @Tags treasury
// @Produce  json
// @Param   cashBoxID query string false "Cash box ID"
// @Param   bankAccountID query string false "Bank account ID"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Security BearerAuth
// @Router /treasury/movements [get]
func (h *treasuryHandler) listMovements(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var params dto.ListMovementsParams
	if !bindQuery(c, &params, "ListMovements") {
		return
	}
	page, err := pagination.ParsePage(params.Limit, params.NextToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txns, err := h.treasuryService.ListMovements(c.Request.Context(), session.OrganizationID, params.Instrument(), page.Limit, page.Offset)
	if err != nil {
		respondError(c, err, "Failed to list movements")
		return
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	c.JSON(http.StatusOK, dto.ListMovementsResponse{
		Transactions: txns,
		NextToken:    pagination.NextToken(page, len(txns)),
	})
}

// getBalances godoc
// @Summary Get consolidated balances
// @Description Balances of every cash box and bank account, plus global totals per currency over active instruments
// @Tags treasury
// @Produce  json
// @Success 200 {object} domain.ConsolidatedBalances
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load balances"
// @Security BearerAuth
// @Router /treasury/balances [get]
func (h *treasuryHandler) getBalances(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	balances, err := h.treasuryService.GetConsolidatedBalances(c.Request.Context(), session.OrganizationID)
	if err != nil {
		respondError(c, err, "Failed to load balances")
		return
	}
	c.JSON(http.StatusOK, balances)
}

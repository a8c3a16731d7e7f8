package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func registerOrganizationRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationSvcFacade) {
	h := &organizationHandler{organizationService: organizationService}
	rg.GET("/organization", h.getCurrentOrganization)
}

// getCurrentOrganization godoc
// @Summary Get the caller's organization
// @Description Returns the organization from the session, including whether accounting is enabled
// @Tags organization
// @Produce json
// @Success 200 {object} domain.Organization
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organization [get]
func (h *organizationHandler) getCurrentOrganization(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	org, err := h.organizationService.GetOrganizationByID(c.Request.Context(), session.OrganizationID)
	if err != nil {
		respondError(c, err, "Failed to retrieve organization")
		return
	}
	c.JSON(http.StatusOK, org)
}

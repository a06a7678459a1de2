package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/dto"
)

// serviceHandler handles HTTP requests for catalog entries.
type serviceHandler struct {
	catalogSvc portssvc.CatalogSvcFacade
}

func newServiceHandler(cs portssvc.CatalogSvcFacade) *serviceHandler {
	return &serviceHandler{catalogSvc: cs}
}

// registerServiceRoutes registers routes related to catalog entries.
func registerServiceRoutes(rg *gin.RouterGroup, catalogSvc portssvc.CatalogSvcFacade) {
	h := newServiceHandler(catalogSvc)

	services := rg.Group("/services")
	{
		services.POST("", h.createService)
		services.GET("", h.listServices)
		services.GET("/:id", h.getService)
		services.PUT("/:id", h.updateService)
		services.PATCH("/:id/toggle-status", h.toggleStatus)
		services.DELETE("/:id", h.deleteService)
	}
}

// createService godoc
// @Summary Purchase a service
// @Description Validates the type-specific config, debits the purchase price
// from the wallet and creates the catalog entry.
// @Tags services
// @Accept json
// @Produce json
// @Param service body dto.CreateServiceRequest true "Service details"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient wallet balance"
// @Security BearerAuth
// @Router /services [post]
func (h *serviceHandler) createService(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.catalogSvc.CreateService(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToServiceResponse(entry))
}

// listServices godoc
// @Summary List the user's services
// @Description Returns all catalog entries owned by the authenticated user.
// @Tags services
// @Produce json
// @Success 200 {object} dto.ListServicesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /services [get]
func (h *serviceHandler) listServices(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entries, err := h.catalogSvc.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListServicesResponse(entries))
}

// getService godoc
// @Summary Get a service
// @Description Returns one catalog entry owned by the authenticated user.
// @Tags services
// @Produce json
// @Param id path string true "Catalog entry ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [get]
func (h *serviceHandler) getService(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.catalogSvc.GetService(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceResponse(entry))
}

// updateService godoc
// @Summary Update a service
// @Description Updates a catalog entry's display name or config. The type is
// immutable.
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Catalog entry ID"
// @Param service body dto.UpdateServiceRequest true "Fields to update"
// @Success 200 {object} dto.ServiceResponse
// @Failure 400 {object} ErrorResponse "Validation error or type change attempt"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [put]
func (h *serviceHandler) updateService(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.catalogSvc.UpdateService(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceResponse(entry))
}

// toggleStatus godoc
// @Summary Toggle a service's status
// @Description Flips the entry between active and paused. Pending entries
// cannot be toggled.
// @Tags services
// @Produce json
// @Param id path string true "Catalog entry ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is pending"
// @Security BearerAuth
// @Router /services/{id}/toggle-status [patch]
func (h *serviceHandler) toggleStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.catalogSvc.ToggleStatus(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceResponse(entry))
}

// deleteService godoc
// @Summary Delete a service
// @Description Removes a catalog entry. Order records captured by the entry
// are retained.
// @Tags services
// @Param id path string true "Catalog entry ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [delete]
func (h *serviceHandler) deleteService(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.catalogSvc.DeleteService(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/services"
	"github.com/ladderhq/ladder/internal/middleware"
	"github.com/ladderhq/ladder/internal/pkg/helpers"
)

// ApplicationController handles application endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// Apply handles POST /api/v1/applications
func (ctrl *ApplicationController) Apply(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	app, err := ctrl.applicationService.Apply(c.Request.Context(), middleware.GetUserID(c), req.OpportunityID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: app})
}

// ListOwn handles GET /api/v1/applications
func (ctrl *ApplicationController) ListOwn(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)

	applications, pagination, err := ctrl.applicationService.ListOwn(
		c.Request.Context(), middleware.GetUserID(c), page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      applications,
		Pagination: pagination,
	}})
}

// ListForOpportunity handles GET /api/v1/opportunities/:id/applications
func (ctrl *ApplicationController) ListForOpportunity(c *gin.Context) {
	opportunityID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, size := helpers.ParsePaginationParams(c)
	applications, pagination, err := ctrl.applicationService.ListForOpportunity(
		c.Request.Context(), opportunityID, middleware.GetUserID(c), middleware.GetIsAdmin(c), page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      applications,
		Pagination: pagination,
	}})
}

// UpdateStatus handles PATCH /api/v1/applications/:id/status
func (ctrl *ApplicationController) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	app, err := ctrl.applicationService.UpdateStatus(
		c.Request.Context(), id, middleware.GetUserID(c), middleware.GetIsAdmin(c),
		models.ApplicationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: app})
}

// Withdraw handles DELETE /api/v1/applications/:id
func (ctrl *ApplicationController) Withdraw(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.applicationService.Withdraw(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/services"
	"github.com/ladderhq/ladder/internal/middleware"
	"github.com/ladderhq/ladder/internal/pkg/helpers"
)

// OpportunityController handles listing endpoints
type OpportunityController struct {
	opportunityService *services.OpportunityService
}

// NewOpportunityController creates a new OpportunityController
func NewOpportunityController(opportunityService *services.OpportunityService) *OpportunityController {
	return &OpportunityController{opportunityService: opportunityService}
}

// List handles GET /api/v1/opportunities
func (ctrl *OpportunityController) List(c *gin.Context) {
	filter := parseOpportunityFilter(c)
	page, size := helpers.ParsePaginationParams(c)

	opportunities, pagination, err := ctrl.opportunityService.List(c.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      opportunities,
		Pagination: pagination,
	}})
}

// ListOwn handles GET /api/v1/opportunities/my. Expired listings are
// included so creators can still manage them.
func (ctrl *OpportunityController) ListOwn(c *gin.Context) {
	userID := middleware.GetUserID(c)
	filter := dto.OpportunityFilter{CreatedBy: &userID, IncludeExpired: true}
	page, size := helpers.ParsePaginationParams(c)

	opportunities, pagination, err := ctrl.opportunityService.List(c.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      opportunities,
		Pagination: pagination,
	}})
}

// Get handles GET /api/v1/opportunities/:id
func (ctrl *OpportunityController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	opp, err := ctrl.opportunityService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: opp})
}

// Create handles POST /api/v1/opportunities
func (ctrl *OpportunityController) Create(c *gin.Context) {
	var req dto.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	opp, err := ctrl.opportunityService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: opp})
}

// Update handles PATCH /api/v1/opportunities/:id
func (ctrl *OpportunityController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	opp, err := ctrl.opportunityService.Update(
		c.Request.Context(), id, middleware.GetUserID(c), middleware.GetIsAdmin(c), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: opp})
}

// Delete handles DELETE /api/v1/opportunities/:id
func (ctrl *OpportunityController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	err = ctrl.opportunityService.Delete(
		c.Request.Context(), id, middleware.GetUserID(c), middleware.GetIsAdmin(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseOpportunityFilter reads the optional list filters from query params
func parseOpportunityFilter(c *gin.Context) dto.OpportunityFilter {
	var filter dto.OpportunityFilter

	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("location"); v != "" {
		filter.Location = &v
	}
	if v := c.Query("field"); v != "" {
		filter.Field = &v
	}
	if v := c.Query("created_by"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			filter.CreatedBy = &id
		}
	}
	if v := c.Query("deadline_after"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DeadlineAfter = &t
		}
	}
	if v := c.Query("deadline_before"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DeadlineBefore = &t
		}
	}
	filter.IncludeExpired = c.Query("include_expired") == "true"

	return filter
}

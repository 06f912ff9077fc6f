package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/services"
	"github.com/ladderhq/ladder/internal/middleware"
	"github.com/ladderhq/ladder/internal/pkg/helpers"
)

// CommunityController handles community endpoints
type CommunityController struct {
	communityService *services.CommunityService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService *services.CommunityService) *CommunityController {
	return &CommunityController{communityService: communityService}
}

// List handles GET /api/v1/communities
func (ctrl *CommunityController) List(c *gin.Context) {
	var filter dto.CommunityFilter
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("created_by"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			filter.CreatedBy = &id
		}
	}
	filter.PublicOnly = c.Query("public_only") == "true"

	page, size := helpers.ParsePaginationParams(c)
	communities, pagination, err := ctrl.communityService.List(c.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      communities,
		Pagination: pagination,
	}})
}

// ListOwn handles GET /api/v1/communities/mine
func (ctrl *CommunityController) ListOwn(c *gin.Context) {
	communities, err := ctrl.communityService.ListOwn(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: communities})
}

// Get handles GET /api/v1/communities/:id
func (ctrl *CommunityController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	community, err := ctrl.communityService.Get(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: community})
}

// Create handles POST /api/v1/communities
func (ctrl *CommunityController) Create(c *gin.Context) {
	var req dto.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	community, err := ctrl.communityService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: community})
}

// Update handles PATCH /api/v1/communities/:id
func (ctrl *CommunityController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	community, err := ctrl.communityService.Update(
		c.Request.Context(), id, middleware.GetUserID(c), middleware.GetIsAdmin(c), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: community})
}

// Delete handles DELETE /api/v1/communities/:id
func (ctrl *CommunityController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	err = ctrl.communityService.Delete(
		c.Request.Context(), id, middleware.GetUserID(c), middleware.GetIsAdmin(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Join handles POST /api/v1/communities/:id/join
func (ctrl *CommunityController) Join(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.communityService.Join(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Joined community"}})
}

// Leave handles POST /api/v1/communities/:id/leave
func (ctrl *CommunityController) Leave(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.communityService.Leave(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Left community"}})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/services"
	"github.com/ladderhq/ladder/internal/middleware"
)

// FavoriteController handles favorite endpoints
type FavoriteController struct {
	favoriteService *services.FavoriteService
}

// NewFavoriteController creates a new FavoriteController
func NewFavoriteController(favoriteService *services.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// Toggle handles POST /api/v1/opportunities/:id/favorite
func (ctrl *FavoriteController) Toggle(c *gin.Context) {
	opportunityID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	active, err := ctrl.favoriteService.Toggle(c.Request.Context(), middleware.GetUserID(c), opportunityID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.ToggleResponse{Active: active}})
}

// List handles GET /api/v1/favorites
func (ctrl *FavoriteController) List(c *gin.Context) {
	opportunities, err := ctrl.favoriteService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: opportunities})
}

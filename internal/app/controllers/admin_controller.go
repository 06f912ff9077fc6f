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

// AdminController handles the admin management endpoints. The routes mount
// it behind AdminRequired.
type AdminController struct {
	adminService  *services.AdminService
	reportService *services.ReportService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, reportService *services.ReportService) *AdminController {
	return &AdminController{adminService: adminService, reportService: reportService}
}

// ListUsers handles GET /api/v1/admin/users
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)

	users, pagination, err := ctrl.adminService.ListUsers(c.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      users,
		Pagination: pagination,
	}})
}

// SetAdmin handles PATCH /api/v1/admin/users/:id/role
func (ctrl *AdminController) SetAdmin(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req struct {
		IsAdmin *bool `json:"is_admin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	err = ctrl.adminService.SetAdmin(c.Request.Context(), targetID, middleware.GetUserID(c), *req.IsAdmin)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Role updated"}})
}

// DeleteUser handles DELETE /api/v1/admin/users/:id
func (ctrl *AdminController) DeleteUser(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.adminService.DeleteUser(c.Request.Context(), targetID, middleware.GetUserID(c)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListReports handles GET /api/v1/admin/reports?status=pending
func (ctrl *AdminController) ListReports(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)
	status := models.ReportStatus(c.Query("status"))

	reports, pagination, err := ctrl.reportService.List(c.Request.Context(), status, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      reports,
		Pagination: pagination,
	}})
}

// ReviewReport handles PATCH /api/v1/admin/reports/:id
func (ctrl *AdminController) ReviewReport(c *gin.Context) {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	report, err := ctrl.reportService.Review(
		c.Request.Context(), reportID, middleware.GetUserID(c), models.ReportStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: report})
}

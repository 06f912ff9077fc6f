package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/services"
	"github.com/ladderhq/ladder/internal/middleware"
)

// AuthController handles registration, login, and account recovery endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// SignUp handles POST /api/v1/auth/signup
func (ctrl *AuthController) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := ctrl.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// SignIn handles POST /api/v1/auth/signin
func (ctrl *AuthController) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := ctrl.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := ctrl.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{
		"message": "If the email is registered, a reset link has been sent",
	}})
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := ctrl.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Password updated"}})
}

// ChangeEmail handles POST /api/v1/auth/change-email (authenticated)
func (ctrl *AuthController) ChangeEmail(c *gin.Context) {
	var req dto.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	userID := middleware.GetUserID(c)
	if err := ctrl.authService.RequestEmailChange(c.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{
		"message": "Confirmation link sent to the new address",
	}})
}

// ConfirmEmailChange handles POST /api/v1/auth/confirm-email
func (ctrl *AuthController) ConfirmEmailChange(c *gin.Context) {
	var req dto.ConfirmEmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := ctrl.authService.ConfirmEmailChange(c.Request.Context(), req.Token); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Email updated"}})
}

// respondValidationError renders a 400 with per-field validation messages
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

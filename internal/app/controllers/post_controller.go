package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/services"
	"github.com/ladderhq/ladder/internal/middleware"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/ladderhq/ladder/internal/pkg/helpers"
)

// PostController handles post, like, and comment endpoints
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Feed handles GET /api/v1/posts
func (ctrl *PostController) Feed(c *gin.Context) {
	var communityID *int64
	if v := c.Query("community_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid community_id parameter"))
			return
		}
		communityID = &id
	}

	page, size := helpers.ParsePaginationParams(c)
	posts, pagination, err := ctrl.postService.Feed(c.Request.Context(), communityID, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      posts,
		Pagination: pagination,
	}})
}

// Get handles GET /api/v1/posts/:id
func (ctrl *PostController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	post, err := ctrl.postService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: post})
}

// Create handles POST /api/v1/posts
func (ctrl *PostController) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	post, err := ctrl.postService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: post})
}

// Delete handles DELETE /api/v1/posts/:id
func (ctrl *PostController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	err = ctrl.postService.Delete(c.Request.Context(), id, middleware.GetUserID(c), middleware.GetIsAdmin(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleLike handles POST /api/v1/posts/:id/like
func (ctrl *PostController) ToggleLike(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	active, err := ctrl.postService.ToggleLike(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.ToggleResponse{Active: active}})
}

// Comment handles POST /api/v1/posts/:id/comments
func (ctrl *PostController) Comment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	comment, err := ctrl.postService.Comment(c.Request.Context(), id, middleware.GetUserID(c), req.Content)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: comment})
}

// Comments handles GET /api/v1/posts/:id/comments
func (ctrl *PostController) Comments(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, size := helpers.ParsePaginationParams(c)
	comments, pagination, err := ctrl.postService.Comments(c.Request.Context(), id, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      comments,
		Pagination: pagination,
	}})
}

// DeleteComment handles DELETE /api/v1/posts/comments/:commentId
func (ctrl *PostController) DeleteComment(c *gin.Context) {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	err = ctrl.postService.DeleteComment(
		c.Request.Context(), commentID, middleware.GetUserID(c), middleware.GetIsAdmin(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

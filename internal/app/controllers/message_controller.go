package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/services"
	"github.com/ladderhq/ladder/internal/middleware"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
)

// MessageController handles conversation and message endpoints
type MessageController struct {
	messageService *services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// StartConversation handles POST /api/v1/conversations
func (ctrl *MessageController) StartConversation(c *gin.Context) {
	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	conv, err := ctrl.messageService.StartConversation(
		c.Request.Context(), middleware.GetUserID(c), req.ParticipantID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: conv})
}

// ListConversations handles GET /api/v1/conversations
func (ctrl *MessageController) ListConversations(c *gin.Context) {
	conversations, err := ctrl.messageService.ListConversations(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: conversations})
}

// Send handles POST /api/v1/conversations/:id/messages
func (ctrl *MessageController) Send(c *gin.Context) {
	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	msg, err := ctrl.messageService.Send(
		c.Request.Context(), conversationID, middleware.GetUserID(c), req.Content)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: msg})
}

// Messages handles GET /api/v1/conversations/:id/messages. The optional
// after query param (RFC 3339) returns only newer messages, which the polling
// clients use; before pages backwards through older history.
func (ctrl *MessageController) Messages(c *gin.Context) {
	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	after, err := parseTimeQuery(c, "after")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	before, err := parseTimeQuery(c, "before")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	messages, err := ctrl.messageService.Messages(
		c.Request.Context(), conversationID, middleware.GetUserID(c), after, before, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: messages})
}

// parseTimeQuery reads an optional RFC 3339 query param
func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, apperrors.NewBadRequestError(name + " must be an RFC 3339 timestamp")
	}
	return &t, nil
}

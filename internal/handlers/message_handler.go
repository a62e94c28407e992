package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/services"
)

// MessageHandler handles HTTP requests for direct messages
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// RegisterMessageRoutes registers message routes, all of which require
// authentication
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/conversations", h.GetConversations)
	g.GET("/messages/conversations/:user_id", h.GetConversation)
}

// SendMessage sends a direct message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	req := new(models.SendMessageRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	message, err := h.messageService.SendMessage(c.Request().Context(), currentUserID, req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, message)
}

// GetConversations lists the current user's conversations
func (h *MessageHandler) GetConversations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	conversations, err := h.messageService.GetConversations(c.Request().Context(), currentUserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"conversations": conversations})
}

// GetConversation returns the message thread with another user and marks
// their messages as read
func (h *MessageHandler) GetConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	peerID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	page, limit := pageParams(c, 50)

	messages, pagination, err := h.messageService.GetConversation(c.Request().Context(), currentUserID, uint(peerID), page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"messages":   messages,
		"pagination": pagination,
	})
}

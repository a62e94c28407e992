package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/services"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactionService *services.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionService *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// RegisterReactionRoutes registers reaction routes requiring authentication
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/reactions", h.togglePostReaction)
	g.POST("/comments/:id/reactions", h.toggleCommentReaction)
}

// RegisterPublicReactionRoutes registers read routes where the viewer may be
// anonymous
func (h *ReactionHandler) RegisterPublicReactionRoutes(g *echo.Group) {
	g.GET("/posts/:id/reactions", h.getPostReactions)
	g.GET("/comments/:id/reactions", h.getCommentReactions)
}

func (h *ReactionHandler) togglePostReaction(c echo.Context) error {
	return h.toggle(c, models.TargetPost)
}

func (h *ReactionHandler) toggleCommentReaction(c echo.Context) error {
	return h.toggle(c, models.TargetComment)
}

func (h *ReactionHandler) getPostReactions(c echo.Context) error {
	return h.list(c, models.TargetPost)
}

func (h *ReactionHandler) getCommentReactions(c echo.Context) error {
	return h.list(c, models.TargetComment)
}

// toggle creates, changes or removes the user's reaction depending on what
// already exists
func (h *ReactionHandler) toggle(c echo.Context, targetType string) error {
	userID := getUserIDFromContext(c)

	var req models.ToggleReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reaction, action, err := h.reactionService.ToggleReaction(c.Request().Context(), userID, targetType, c.Param("id"), req.Kind)
	if err != nil {
		return domainError(err)
	}

	status := http.StatusOK
	if action == models.ReactionCreated {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{
		"action":   action,
		"reaction": reaction,
	})
}

func (h *ReactionHandler) list(c echo.Context, targetType string) error {
	viewerID := getUserIDFromContext(c)
	page, limit := pageParams(c, 20)

	summary, err := h.reactionService.GetReactions(c.Request().Context(), targetType, c.Param("id"), viewerID, page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, summary)
}

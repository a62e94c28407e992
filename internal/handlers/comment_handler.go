package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment routes requiring authentication
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// RegisterPublicCommentRoutes registers read routes where the viewer may be
// anonymous
func (h *CommentHandler) RegisterPublicCommentRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/comments", h.GetComments)
	g.GET("/comments/:id/replies", h.GetCommentReplies)
}

// CreateComment creates a new comment or reply on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), c.Param("post_id"), userID, &req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetComments retrieves a page of top-level comments on a post
func (h *CommentHandler) GetComments(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	page, limit := pageParams(c, 20)

	comments, pagination, err := h.commentService.GetComments(c.Request().Context(), c.Param("post_id"), viewerID, page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"comments":   comments,
		"pagination": pagination,
	})
}

// GetCommentReplies retrieves a page of direct replies to a comment
func (h *CommentHandler) GetCommentReplies(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	page, limit := pageParams(c, 20)

	replies, pagination, err := h.commentService.GetCommentReplies(c.Request().Context(), c.Param("id"), viewerID, page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"replies":    replies,
		"pagination": pagination,
	})
}

// UpdateComment updates an existing comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentService.UpdateComment(c.Request().Context(), c.Param("id"), userID, &req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment and its direct replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID := getUserIDFromContext(c)

	if err := h.commentService.DeleteComment(c.Request().Context(), c.Param("id"), userID); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

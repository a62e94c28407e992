package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
	"github.com/anhnvjm07/v-social/internal/services"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService    *services.PostService
	userRepository repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{postService: postService, userRepository: userRepo}
}

// RegisterPostRoutes registers post routes requiring authentication
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/me", h.GetMyPosts)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// RegisterPublicPostRoutes registers read routes where the viewer may be
// anonymous
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
}

// EnrichedPost is a post with its author's compact profile attached
type EnrichedPost struct {
	models.Post
	Author models.UserCompact `json:"author"`
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), userID, &req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, h.enrich([]models.Post{*post})[0])
}

// GetPost retrieves a single post, applying visibility rules for the viewer
func (h *PostHandler) GetPost(c echo.Context) error {
	viewerID := getUserIDFromContext(c)

	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, h.enrich([]models.Post{*post})[0])
}

// ListPosts returns a visibility-filtered page of posts, optionally
// restricted to one author via ?author_id
func (h *PostHandler) ListPosts(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	page, limit := pageParams(c, 10)

	var authorID *uint
	if raw := c.QueryParam("author_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
		}
		id := uint(parsed)
		authorID = &id
	}

	posts, pagination, err := h.postService.ListPosts(c.Request().Context(), authorID, viewerID, page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":      h.enrich(posts),
		"pagination": pagination,
	})
}

// GetMyPosts returns the authenticated user's own posts, all tiers included
func (h *PostHandler) GetMyPosts(c echo.Context) error {
	userID := getUserIDFromContext(c)
	page, limit := pageParams(c, 10)

	posts, pagination, err := h.postService.ListPosts(c.Request().Context(), &userID, userID, page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":      h.enrich(posts),
		"pagination": pagination,
	})
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), c.Param("id"), userID, &req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, h.enrich([]models.Post{*post})[0])
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := getUserIDFromContext(c)

	if err := h.postService.DeletePost(c.Request().Context(), c.Param("id"), userID); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) enrich(posts []models.Post) []EnrichedPost {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.AuthorID
	}
	authorMap := buildAuthorMap(h.userRepository, ids)

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		enriched[i] = EnrichedPost{Post: p, Author: authorMap[p.AuthorID]}
	}
	return enriched
}

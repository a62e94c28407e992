package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anhnvjm07/v-social/internal/services"
)

// FollowHandler handles HTTP requests related to follow relationships
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow routes requiring authentication
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/follow-status", h.GetFollowStatus)
}

// RegisterPublicFollowRoutes registers read routes where the viewer may be
// anonymous
func (h *FollowHandler) RegisterPublicFollowRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/follow-stats", h.GetFollowStats)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	follow, err := h.followService.FollowUser(currentUserID, targetID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, follow)
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.followService.UnfollowUser(currentUserID, targetID); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetFollowers retrieves a page of a user's followers
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c, 20)

	users, pagination, err := h.followService.GetFollowers(targetID, page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":      users,
		"pagination": pagination,
	})
}

// GetFollowing retrieves a page of the users a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c, 20)

	users, pagination, err := h.followService.GetFollowing(targetID, page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":      users,
		"pagination": pagination,
	})
}

// GetFollowStatus reports whether the current user follows the target user
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	isFollowing, err := h.followService.IsFollowing(currentUserID, targetID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"is_following": isFollowing})
}

// GetFollowStats returns follower/following totals for a user
func (h *FollowHandler) GetFollowStats(c echo.Context) error {
	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.followService.GetFollowStats(targetID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, stats)
}

func parseUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anhnvjm07/v-social/internal/services"
)

// SearchHandler handles HTTP requests for search
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// RegisterPublicSearchRoutes registers the search route. The viewer may be
// anonymous; an authenticated viewer sees their follower-only results.
func (h *SearchHandler) RegisterPublicSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search runs a user, post or hashtag search
func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}

	searchType := c.QueryParam("type")
	switch searchType {
	case "":
		searchType = services.SearchAll
	case services.SearchUsers, services.SearchPosts, services.SearchHashtags, services.SearchAll:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid search type")
	}

	filters, err := parseSearchFilters(c)
	if err != nil {
		return err
	}

	viewerID := getUserIDFromContext(c)
	page, limit := pageParams(c, 10)

	results, pagination, err := h.searchService.Search(c.Request().Context(), query, searchType, filters, viewerID, page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results":    results,
		"pagination": pagination,
	})
}

func parseSearchFilters(c echo.Context) (services.SearchFilters, error) {
	var filters services.SearchFilters

	if raw := c.QueryParam("author_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filters, echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
		}
		authorID := uint(id)
		filters.AuthorID = &authorID
	}

	if raw := c.QueryParam("date_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, echo.NewHTTPError(http.StatusBadRequest, "Invalid date_from, expected RFC3339")
		}
		filters.DateFrom = &from
	}

	if raw := c.QueryParam("date_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, echo.NewHTTPError(http.StatusBadRequest, "Invalid date_to, expected RFC3339")
		}
		filters.DateTo = &to
	}

	return filters, nil
}

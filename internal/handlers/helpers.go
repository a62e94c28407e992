package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
	"github.com/anhnvjm07/v-social/internal/services"
)

// getUserIDFromContext returns the authenticated user's ID, or 0 for
// anonymous requests
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// pageParams reads page/limit query parameters, applying the default and the
// global page-size ceiling
func pageParams(c echo.Context, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return models.ClampPage(page, limit, defaultLimit)
}

// domainError translates a service error into an HTTP error. Domain errors
// keep their message; anything unexpected is logged and reported as a
// generic internal failure.
func domainError(err error) *echo.HTTPError {
	status := services.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		return echo.NewHTTPError(status, "Internal server error")
	}
	return echo.NewHTTPError(status, err.Error())
}

// buildAuthorMap resolves compact author profiles for a set of user IDs.
// Lookup failures leave authors out rather than failing the listing.
func buildAuthorMap(userRepo repositories.UserRepository, ids []uint) map[uint]models.UserCompact {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	authorMap := make(map[uint]models.UserCompact, len(unique))
	users, err := userRepo.GetUsersByIDs(unique)
	if err != nil {
		log.Printf("Failed to resolve authors: %v", err)
		return authorMap
	}
	for i := range users {
		authorMap[users[i].ID] = users[i].ToCompact()
	}
	return authorMap
}

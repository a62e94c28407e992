package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhnvjm07/v-social/internal/models"
)

func signToken(t *testing.T, userID uint, username, secret string) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token := signToken(t, 42, "alice", "test-secret")

	c, err := runMiddleware(t, JWTAuthMiddleware(), "Bearer "+token)
	require.NoError(t, err)

	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTAuthMiddlewareRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		name       string
		authHeader string
	}{
		{"missing header", ""},
		{"malformed header", "NotBearer token"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + signToken(t, 42, "alice", "other-secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runMiddleware(t, JWTAuthMiddleware(), tt.authHeader)
			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}

func TestJWTAuthMiddlewareRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	claims := &models.JwtCustomClaims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = runMiddleware(t, JWTAuthMiddleware(), "Bearer "+signed)
	require.Error(t, err)
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// No token: the request passes through as anonymous
	c, err := runMiddleware(t, OptionalJWTAuthMiddleware(), "")
	require.NoError(t, err)
	assert.Nil(t, c.Get("user"))

	// Invalid token: still anonymous, not an error
	c, err = runMiddleware(t, OptionalJWTAuthMiddleware(), "Bearer bogus")
	require.NoError(t, err)
	assert.Nil(t, c.Get("user"))

	// Valid token: claims land in the context
	c, err = runMiddleware(t, OptionalJWTAuthMiddleware(), "Bearer "+signToken(t, 7, "bob", "test-secret"))
	require.NoError(t, err)
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(7), claims.UserID)
}

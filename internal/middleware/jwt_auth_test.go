package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelichko/pulseline/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID:   userID,
		Username: "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runMiddleware(mw echo.MiddlewareFunc, token string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return c, handler(c)
}

func TestJWTAuthUsesInjectedSecret(t *testing.T) {
	token := signToken(t, "configured-secret", 42)

	c, err := runMiddleware(JWTAuthMiddleware("configured-secret"), token)
	require.NoError(t, err)

	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestJWTAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	token := signToken(t, "some-other-secret", 42)

	_, err := runMiddleware(JWTAuthMiddleware("configured-secret"), token)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestOptionalJWTAuthLetsAnonymousThrough(t *testing.T) {
	c, err := runMiddleware(OptionalJWTAuthMiddleware("configured-secret"), "")
	require.NoError(t, err)
	assert.Nil(t, c.Get("user"))
}

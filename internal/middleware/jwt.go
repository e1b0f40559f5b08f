package middleware // reusable HTTP middleware for the agent API

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-checkin/internal/utils"
)

// Context keys set by JWTAuth.
const (
	CtxAgent = "agent"
	CtxRole  = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the agent's username and role in the request context under
// CtxAgent and CtxRole.  The secret must match the one used when issuing
// tokens.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(CtxAgent, claims.Subject)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

package middleware

import "github.com/labstack/echo/v4"

// AgentName returns the username stored by JWTAuth, or "anon" for
// unauthenticated requests.
func AgentName(c echo.Context) string {
	if s, ok := c.Get(CtxAgent).(string); ok && s != "" {
		return s
	}
	return "anon"
}

package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-checkin/internal/config"
	"github.com/iliyamo/flight-checkin/internal/handler"
	"github.com/iliyamo/flight-checkin/internal/middleware"
)

// RegisterRoutes registers the unauthenticated operational endpoints:
// the health check and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, fl handler.FlightLister, metrics http.Handler) {
	e.GET("/healthz", handler.Health(fl))
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}

// RegisterAuth registers the login endpoint under /v1/auth and the
// authenticated /v1/me endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)
	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret), middleware.RequireRole(config.RoleAgent, config.RoleSupervisor))
}

// RegisterCheckin registers the flight endpoints.  Every route requires an
// agent token and is rate limited per the given limiter.
func RegisterCheckin(e *echo.Echo, h *handler.CheckinHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/flights")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(config.RoleAgent, config.RoleSupervisor))
	if limiter != nil {
		g.Use(limiter)
	}

	g.GET("", h.ListFlights)
	g.POST("/:flight/checkin", h.CheckinParty)
	g.POST("/:flight/checkin/seat", h.CheckinSeat)
	g.GET("/:flight/chart", h.Chart)
	g.GET("/:flight/seats", h.Seats)
}

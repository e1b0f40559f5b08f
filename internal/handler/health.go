package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FlightLister reports the flights a server is serving.
type FlightLister interface {
	Flights() []string
}

// Health returns a liveness handler that answers "ok" once at least one
// flight is loaded and 503 before that.
func Health(fl FlightLister) echo.HandlerFunc {
	return func(c echo.Context) error {
		if len(fl.Flights()) == 0 {
			return c.String(http.StatusServiceUnavailable, "no flights loaded")
		}
		return c.String(http.StatusOK, "ok")
	}
}

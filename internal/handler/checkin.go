package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"github.com/iliyamo/flight-checkin/internal/cache"
	"github.com/iliyamo/flight-checkin/internal/chart"
	"github.com/iliyamo/flight-checkin/internal/middleware"
	"github.com/iliyamo/flight-checkin/internal/model"
	"github.com/iliyamo/flight-checkin/internal/seating"
	"github.com/iliyamo/flight-checkin/internal/service"
)

// CheckinHandler serves the check-in endpoints.
type CheckinHandler struct {
	Svc     *service.CheckinService
	Charts  *cache.ChartCache
	Catalog *model.Catalog
	Log     *slog.Logger
	Timeout time.Duration
}

func NewCheckinHandler(svc *service.CheckinService, charts *cache.ChartCache, log *slog.Logger) *CheckinHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CheckinHandler{
		Svc:     svc,
		Charts:  charts,
		Catalog: model.DefaultCatalog(),
		Log:     log,
		Timeout: 5 * time.Second,
	}
}

func (h *CheckinHandler) ctx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), h.Timeout)
}

// ListFlights returns the loaded flight numbers.
func (h *CheckinHandler) ListFlights(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"flights": h.Svc.Flights()})
}

// CheckinParty seats a party.  POST /v1/flights/:flight/checkin
func (h *CheckinHandler) CheckinParty(c echo.Context) error {
	var req partyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	class, err := h.Catalog.ParseClass(req.Class)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	party := model.NewParty(class)
	for i, t := range req.Travelers {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("travelers[%d]: name required", i)})
		}
		pref, err := h.Catalog.ParseSeatType(t.Preference)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("travelers[%d]: %v", i, err)})
		}
		party.Add(name, pref, t.Minor)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	flight := c.Param("flight")
	res, err := h.Svc.CheckinParty(ctx, flight, middleware.AgentName(c), party)
	return h.respond(c, flight, res, err)
}

// CheckinSeat places one traveler on a named seat.
// POST /v1/flights/:flight/checkin/seat
func (h *CheckinHandler) CheckinSeat(c echo.Context) error {
	var req seatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	class, err := h.Catalog.ParseClass(req.Class)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	name, seat := strings.TrimSpace(req.Name), strings.TrimSpace(req.Seat)
	if name == "" || seat == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/seat required"})
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	flight := c.Param("flight")
	res, err := h.Svc.CheckinSeat(ctx, flight, middleware.AgentName(c), class, name, req.Minor, seat)
	return h.respond(c, flight, res, err)
}

func (h *CheckinHandler) respond(c echo.Context, flight string, res seating.CheckinResult, err error) error {
	switch {
	case errors.Is(err, service.ErrFlightNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
	case errors.Is(err, service.ErrUnknownClass):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case err != nil:
		h.Log.Error("check-in not persisted", "flight", flight, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "check-in not persisted",
			"checkin": toCheckinResp(flight, res, h.Catalog),
		})
	}

	body := toCheckinResp(flight, res, h.Catalog)
	switch res.Status {
	case seating.StatusOK:
		return c.JSON(http.StatusCreated, body)
	case seating.StatusOverbooked:
		return c.JSON(http.StatusConflict, echo.Map{"error": "overbooked", "checkin": body})
	default:
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat unavailable", "checkin": body})
	}
}

// Chart returns the seating chart of a flight.  GET /v1/flights/:flight/chart
//
// The body is cached in Redis per check-in generation of the flight and
// carries an ETag derived from its xxh3 hash.
func (h *CheckinHandler) Chart(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	flight := c.Param("flight")

	gen, err := h.Svc.Generation(flight)
	if errors.Is(err, service.ErrFlightNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
	}
	body, hit, err := h.Charts.Get(ctx, flight, gen)
	if err != nil {
		h.Log.Warn("chart cache read failed", "flight", flight, "error", err)
	}
	if !hit {
		charts, built, err := h.Svc.Chart(ctx, flight)
		if errors.Is(err, service.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "chart unavailable"})
		}
		resp := chartResp{Flight: flight, Lines: chart.Lines(flight, charts, h.Catalog)}
		for _, cc := range charts {
			resp.Classes = append(resp.Classes, toClassChartResp(cc, h.Catalog))
		}
		if body, err = json.Marshal(resp); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "chart unavailable"})
		}
		if err := h.Charts.Set(ctx, flight, built, body); err != nil {
			h.Log.Warn("chart cache write failed", "flight", flight, "error", err)
		}
	}

	etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// Seats lists the free seats of one class.  GET /v1/flights/:flight/seats?class=
func (h *CheckinHandler) Seats(c echo.Context) error {
	class, err := h.Catalog.ParseClass(c.QueryParam("class"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	flight := c.Param("flight")
	seats, err := h.Svc.Available(flight, class)
	if errors.Is(err, service.ErrFlightNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out := make([]seatResp, 0, len(seats))
	for _, s := range seats {
		out = append(out, toSeatResp(s, h.Catalog))
	}
	return c.JSON(http.StatusOK, echo.Map{"flight": flight, "class": h.Catalog.ClassName(class), "seats": out})
}

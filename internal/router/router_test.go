package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/flight-checkin/internal/cache"
	"github.com/iliyamo/flight-checkin/internal/config"
	"github.com/iliyamo/flight-checkin/internal/handler"
	"github.com/iliyamo/flight-checkin/internal/logging"
	"github.com/iliyamo/flight-checkin/internal/metrics"
	"github.com/iliyamo/flight-checkin/internal/middleware"
	"github.com/iliyamo/flight-checkin/internal/seatmap"
	"github.com/iliyamo/flight-checkin/internal/seating"
	"github.com/iliyamo/flight-checkin/internal/service"
)

const (
	secret   = "router-secret"
	password = "let-me-board"
)

const seatMap = `flight OA815
business
rows 1
seats A, B
economy
rows 2
emergency 3
seats A B, C D
`

type api struct {
	e      *echo.Echo
	mr     *miniredis.Miniredis
	svc    *service.CheckinService
	charts *cache.ChartCache
	token  string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	fleet := &config.Fleet{Agents: []config.AgentConfig{
		{Username: "alice", PasswordHash: string(hash), Role: config.RoleAgent},
		{Username: "pat", PasswordHash: string(hash), Role: "PASSENGER"},
	}}

	m, err := seatmap.Parse(bytes.NewBufferString(seatMap), nil)
	require.NoError(t, err)
	f, err := m.Flight(seating.DefaultWeights())
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	charts := cache.NewChartCache(config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "c"}, rdb)

	reg := prometheus.NewRegistry()
	log := logging.Discard()
	svc := service.NewCheckinService(
		service.WithChartCache(charts),
		service.WithMetrics(metrics.NewPrometheus(reg, "test")),
		service.WithLogger(log),
	)
	require.NoError(t, svc.Register(f))

	limiter := middleware.NewTokenBucket(config.RateLimitConfig{
		Enabled: true, Capacity: 100, RefillTokens: 1, RefillInterval: time.Second,
		TTL: time.Minute, KeyStrategy: "user", Prefix: "rl",
	}, rdb, log)

	e := echo.New()
	RegisterRoutes(e, svc, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	RegisterAuth(e, handler.NewAuthHandler(fleet, secret, 15), secret)
	RegisterCheckin(e, handler.NewCheckinHandler(svc, charts, log), secret, limiter)

	a := &api{e: e, mr: mr, svc: svc, charts: charts}
	a.token = a.login(t, "alice", password)
	return a
}

func (a *api) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *api) login(t *testing.T, user, pw string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": user, "password": pw})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Access.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func TestHealthAndMetrics(t *testing.T) {
	a := newAPI(t)
	rec := a.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = a.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_available_seats{class="economy",flight="OA815"} 8`)
}

func TestLogin(t *testing.T) {
	a := newAPI(t)
	assert.Equal(t, http.StatusUnauthorized,
		a.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "alice", "password": "nope"}).Code)
	assert.Equal(t, http.StatusUnauthorized,
		a.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "mallory", "password": password}).Code)
	assert.Equal(t, http.StatusBadRequest,
		a.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "alice"}).Code)

	rec := a.do(t, http.MethodGet, "/v1/me", a.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode(t, rec)["username"])
}

func TestFlightsRequireAgentRole(t *testing.T) {
	a := newAPI(t)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/v1/flights", "", nil).Code)

	passenger := a.login(t, "pat", password)
	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodGet, "/v1/flights", passenger, nil).Code)

	rec := a.do(t, http.MethodGet, "/v1/flights", a.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"OA815"}, decode(t, rec)["flights"])
	assert.Equal(t, "100", rec.Header().Get("X-RateLimit-Limit"))
}

func TestCheckinParty(t *testing.T) {
	a := newAPI(t)
	rec := a.do(t, http.MethodPost, "/v1/flights/OA815/checkin", a.token, map[string]any{
		"class": "economy",
		"travelers": []map[string]any{
			{"name": "kid", "preference": "window", "minor": true},
			{"name": "mum", "preference": "aisle"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assigned := body["assignments"].([]any)
	require.Len(t, assigned, 2)
	first := assigned[0].(map[string]any)
	assert.Equal(t, "kid", first["traveler"])
	assert.Equal(t, false, first["exit"], "minors stay out of exit rows")

	seats := a.do(t, http.MethodGet, "/v1/flights/OA815/seats?class=economy", a.token, nil)
	require.Equal(t, http.StatusOK, seats.Code)
	assert.Len(t, decode(t, seats)["seats"], 6)
}

func TestCheckinParty_Overbooked(t *testing.T) {
	a := newAPI(t)
	travelers := make([]map[string]any, 3)
	for i := range travelers {
		travelers[i] = map[string]any{"name": fmt.Sprintf("p%d", i), "preference": "none"}
	}
	rec := a.do(t, http.MethodPost, "/v1/flights/OA815/checkin", a.token, map[string]any{
		"class": "business", "travelers": travelers,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "overbooked", body["error"])
	ci := body["checkin"].(map[string]any)
	assert.Len(t, ci["assignments"], 2)
	assert.Len(t, ci["unseated"], 1)
}

func TestCheckinParty_BadInput(t *testing.T) {
	a := newAPI(t)
	cases := map[string]map[string]any{
		"unknown class":      {"class": "cargo", "travelers": []map[string]any{{"name": "x"}}},
		"unknown preference": {"class": "economy", "travelers": []map[string]any{{"name": "x", "preference": "middle"}}},
		"missing name":       {"class": "economy", "travelers": []map[string]any{{"preference": "window"}}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/v1/flights/OA815/checkin", a.token, body).Code)
		})
	}
	rec := a.do(t, http.MethodPost, "/v1/flights/ZZ1/checkin", a.token, map[string]any{"class": "economy"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckinSeat(t *testing.T) {
	a := newAPI(t)
	req := map[string]any{"class": "economy", "name": "zoe", "seat": "3a"}
	rec := a.do(t, http.MethodPost, "/v1/flights/OA815/checkin/seat", a.token, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode(t, rec)["assignments"].([]any)[0].(map[string]any)
	assert.Equal(t, "3A", first["seat"])
	assert.Equal(t, true, first["exit"])

	rec = a.do(t, http.MethodPost, "/v1/flights/OA815/checkin/seat", a.token, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "seat unavailable", decode(t, rec)["error"])

	rec = a.do(t, http.MethodPost, "/v1/flights/OA815/checkin/seat", a.token, map[string]any{"class": "economy", "name": "zoe"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChart_CachedWithETag(t *testing.T) {
	a := newAPI(t)
	rec := a.do(t, http.MethodGet, "/v1/flights/OA815/chart", a.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.True(t, a.mr.Exists("c:chart:OA815:0"))

	body := decode(t, rec)
	lines := body["lines"].([]any)
	assert.Equal(t, "FLIGHT OA815", lines[0])
	assert.Equal(t, "---------  business  ---------", lines[1])
	assert.Equal(t, "1: 1A(W)::NONE, 1B(W)::NONE,", lines[2])

	req := httptest.NewRequest(http.MethodGet, "/v1/flights/OA815/chart", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.token)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	a.e.ServeHTTP(cached, req)
	assert.Equal(t, http.StatusNotModified, cached.Code)

	// a check-in drops the cached chart and changes the ETag
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/v1/flights/OA815/checkin/seat", a.token,
		map[string]any{"class": "business", "name": "vip", "seat": "1B"}).Code)
	assert.False(t, a.mr.Exists("c:chart:OA815:0"))

	rec = a.do(t, http.MethodGet, "/v1/flights/OA815/chart", a.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, etag, rec.Header().Get("ETag"))
	assert.Contains(t, rec.Body.String(), "1B(W)::vip")
}

func TestChart_UnknownFlight(t *testing.T) {
	a := newAPI(t)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/v1/flights/ZZ1/chart", a.token, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/v1/flights/ZZ1/seats?class=economy", a.token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/v1/flights/OA815/seats", a.token, nil).Code)
}

func TestChart_StaleFillAfterCheckinIsNotServed(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()

	// a chart request builds its body, then a check-in commits before the
	// request gets to store it
	charts, built, err := a.svc.Chart(ctx, "OA815")
	require.NoError(t, err)
	stale, err := json.Marshal(map[string]any{"flight": "OA815", "classes": charts})
	require.NoError(t, err)

	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/v1/flights/OA815/checkin/seat", a.token,
		map[string]any{"class": "business", "name": "vip", "seat": "1B"}).Code)
	require.NoError(t, a.charts.Set(ctx, "OA815", built, stale))

	rec := a.do(t, http.MethodGet, "/v1/flights/OA815/chart", a.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1B(W)::vip")
	assert.True(t, a.mr.Exists("c:chart:OA815:1"))
}

func TestSeats(t *testing.T) {
	a := newAPI(t)
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/v1/flights/OA815/checkin/seat", a.token,
		map[string]any{"class": "economy", "name": "zoe", "seat": "2C"}).Code)

	rec := a.do(t, http.MethodGet, "/v1/flights/OA815/seats?class=economy", a.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Flight string `json:"flight"`
		Class  string `json:"class"`
		Seats  []struct {
			ID    int    `json:"id"`
			Label string `json:"label"`
		} `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OA815", resp.Flight)
	assert.Equal(t, "economy", resp.Class)

	var labels []string
	for i, st := range resp.Seats {
		if i > 0 {
			assert.Less(t, resp.Seats[i-1].ID, st.ID, "seats come back in id order")
		}
		labels = append(labels, st.Label)
	}
	assert.Equal(t, []string{"2D", "2B", "2A", "3A", "3B", "3C", "3D"}, labels)

	cases := map[string]string{
		"missing class": "/v1/flights/OA815/seats",
		"unknown class": "/v1/flights/OA815/seats?class=cargo",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, path, a.token, nil).Code)
		})
	}
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/v1/flights/ZZ1/seats?class=economy", a.token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/v1/flights/OA815/seats?class=economy", "", nil).Code)
}

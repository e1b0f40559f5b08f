package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-checkin/internal/config"
	"github.com/iliyamo/flight-checkin/internal/middleware"
	"github.com/iliyamo/flight-checkin/internal/utils"
)

// AgentDirectory looks agents up by username.
type AgentDirectory interface {
	Agent(username string) (config.AgentConfig, bool)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Agents    AgentDirectory
	JWTSecret string
	TTLMin    int
}

func NewAuthHandler(agents AgentDirectory, secret string, ttlMin int) *AuthHandler {
	return &AuthHandler{Agents: agents, JWTSecret: secret, TTLMin: ttlMin}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type agentPart struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type authResp struct {
	Agent  agentPart `json:"agent"`
	Access tokenPart `json:"access"`
}

// Login checks an agent's password and returns an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	agent, ok := h.Agents.Agent(req.Username)
	if !ok || utils.VerifyPassword(agent.PasswordHash, req.Password) != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	at, err := utils.NewAccessToken(h.JWTSecret, agent.Username, agent.Role, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, authResp{
		Agent:  agentPart{Username: agent.Username, Role: agent.Role},
		Access: tokenPart{Token: at.Token, Expires: at.Exp},
	})
}

// Me returns the authenticated agent.
func (h *AuthHandler) Me(c echo.Context) error {
	role, _ := c.Get(middleware.CtxRole).(string)
	return c.JSON(http.StatusOK, agentPart{Username: middleware.AgentName(c), Role: role})
}

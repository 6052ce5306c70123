package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/middleware"
	"github.com/iliyamo/fixture-tickets/internal/model"
	"github.com/iliyamo/fixture-tickets/internal/utils"
)

// AuthHandler opens sessions on login or registration and issues access
// tokens bound to them.
type AuthHandler struct {
	Sessions     *booking.Sessions
	JWTSecret    string
	AccessTTLMin int
	Log          *zap.Logger
	Now          func() time.Time
}

func NewAuthHandler(sessions *booking.Sessions, secret string, ttlMin int, log *zap.Logger) *AuthHandler {
	if sessions == nil {
		panic("nil sessions passed to NewAuthHandler")
	}
	return &AuthHandler{Sessions: sessions, JWTSecret: secret, AccessTTLMin: ttlMin, Log: orNop(log), Now: time.Now}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	User      model.Identity    `json:"user"`
	Access    utils.AccessToken `json:"access"`
	SessionID string            `json:"session_id"`
}

// Login: POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s := h.Sessions.Open()
	who, err := s.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.Sessions.Close(s.ID())
		return respondError(c, h.Log, err)
	}
	return h.issue(c, http.StatusOK, s, who)
}

// Register: POST /v1/auth/register.  The new patron is logged in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s := h.Sessions.Open()
	who, err := s.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.Sessions.Close(s.ID())
		return respondError(c, h.Log, err)
	}
	return h.issue(c, http.StatusCreated, s, who)
}

func (h *AuthHandler) issue(c echo.Context, status int, s *booking.Session, who model.Identity) error {
	access, err := utils.NewAccessToken(h.JWTSecret, who.ID, who.Role, s.ID(), h.AccessTTLMin, h.Now())
	if err != nil {
		h.Sessions.Close(s.ID())
		h.Log.Error("issue access token failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	h.Log.Info("session opened", zap.String("session_id", s.ID()), zap.String("user_id", who.ID), zap.String("role", who.Role))
	return c.JSON(status, authResp{User: who, Access: access, SessionID: s.ID()})
}

// Logout: POST /v1/auth/logout.  Drops the session so its tokens stop
// working; the ledger is untouched.
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _ := c.Get(middleware.CtxSessionID).(string)
	h.Sessions.Close(sid)
	return c.NoContent(http.StatusNoContent)
}

// Me: GET /v1/me.
func (h *AuthHandler) Me(c echo.Context) error {
	s, ok := middleware.Session(c)
	if !ok {
		return respondError(c, h.Log, booking.ErrNotAuthenticated)
	}
	who, ok := s.Identity()
	if !ok {
		return respondError(c, h.Log, booking.ErrNotAuthenticated)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": who, "session_id": s.ID()})
}

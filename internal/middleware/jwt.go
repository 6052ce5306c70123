package middleware // reusable HTTP middleware for the ticketing API

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/utils"
)

// Context keys populated by JWTAuth.
const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxSessionID = "session_id"
	ctxSession   = "session"
)

// SessionLookup resolves the session a token is bound to.
type SessionLookup interface {
	Get(id string) (*booking.Session, error)
}

// JWTAuth validates a Bearer access token and binds the request to the
// server-side session named by its sid claim.  Tokens whose session has
// expired, logged out or switched identity are refused.
func JWTAuth(secret string, sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			s, err := sessions.Get(claims.SessionID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
			}
			who, ok := s.Identity()
			if !ok || who.ID != claims.Subject {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
			}

			c.Set(CtxUserID, who.ID)
			c.Set(CtxRole, who.Role)
			c.Set(CtxSessionID, claims.SessionID)
			c.Set(ctxSession, s)
			return next(c)
		}
	}
}

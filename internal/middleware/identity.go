package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fixture-tickets/internal/booking"
)

// UserID returns the authenticated identity id, or "" for anonymous
// requests.
func UserID(c echo.Context) string {
	s, _ := c.Get(CtxUserID).(string)
	return s
}

// Role returns the authenticated role, or "".
func Role(c echo.Context) string {
	s, _ := c.Get(CtxRole).(string)
	return s
}

// Session returns the session bound by JWTAuth.
func Session(c echo.Context) (*booking.Session, bool) {
	s, ok := c.Get(ctxSession).(*booking.Session)
	return s, ok && s != nil
}

// rateSubject names the caller for rate limit keys.
func rateSubject(c echo.Context) string {
	if id := UserID(c); id != "" {
		return id
	}
	return "anon"
}

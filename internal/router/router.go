package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fixture-tickets/internal/handler"
	"github.com/iliyamo/fixture-tickets/internal/middleware"
)

// RegisterRoutes registers routes that need neither a token nor rate
// limiting.  Currently only the health check.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterAuth registers login, registration and the session endpoints.
// limit guards the credential routes; logout and /me require a token bound
// to a live session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, sessions middleware.SessionLookup, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := middleware.JWTAuth(jwtSecret, sessions)
	e.POST("/v1/auth/logout", a.Logout, auth)
	e.GET("/v1/me", a.Me, auth)
}

// RegisterPublic registers the guest catalog.  cache fronts the stable
// listings only; the seat map reflects live bookings and is never cached.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache, limit echo.MiddlewareFunc) {
	g := e.Group("/v1", limit)
	g.GET("/fixtures", p.ListFixtures, cache)
	g.GET("/fixtures/:id", p.GetFixture, cache)
	g.GET("/fixtures/:id/seats", p.FixtureSeats)
	g.GET("/teams", p.Teams, cache)
	g.GET("/venues", p.Venues, cache)
	g.GET("/payment-details", p.PaymentDetails, cache)
}

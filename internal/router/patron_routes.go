package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fixture-tickets/internal/handler"
	"github.com/iliyamo/fixture-tickets/internal/middleware"
	"github.com/iliyamo/fixture-tickets/internal/model"
)

// RegisterPatron registers the draft and booking endpoints under /v1.  All
// routes require a token bound to a live session.  Tickets are open to
// admins too; ownership is checked by the booking engine.
func RegisterPatron(e *echo.Echo, h *handler.PatronHandler, jwtSecret string, sessions middleware.SessionLookup, limit echo.MiddlewareFunc) {
	auth := middleware.JWTAuth(jwtSecret, sessions)
	g := e.Group("/v1", auth, limit, middleware.RequireRole(model.RolePatron))

	g.PUT("/draft", h.SelectFixture)
	g.GET("/draft", h.GetDraft)
	g.POST("/draft/seats/:seat", h.ToggleSeat)
	g.DELETE("/draft/seats", h.ClearSelection)
	g.POST("/draft/submit", h.Submit)
	g.GET("/my-bookings", h.MyBookings)

	e.GET("/v1/bookings/:id/ticket", h.Ticket, auth, limit,
		middleware.RequireRole(model.RolePatron, model.RoleAdmin))
}

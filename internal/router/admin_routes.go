package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fixture-tickets/internal/handler"
	"github.com/iliyamo/fixture-tickets/internal/middleware"
	"github.com/iliyamo/fixture-tickets/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, sessions middleware.SessionLookup) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret, sessions),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Verification queue ----
	g.GET("/bookings", h.ListBookings)
	g.POST("/bookings/:id/verify", h.Verify)

	// ---- Dashboard ----
	g.GET("/stats", h.Stats)
	g.GET("/payment-details", h.PaymentDetails)
}

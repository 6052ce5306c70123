package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/middleware"
	"github.com/iliyamo/fixture-tickets/internal/model"
)

// AdminHandler exposes the verification queue and dashboard.
type AdminHandler struct {
	Engine  *booking.Engine
	Payment model.PaymentDetails
	Log     *zap.Logger
}

func NewAdminHandler(engine *booking.Engine, payment model.PaymentDetails, log *zap.Logger) *AdminHandler {
	if engine == nil {
		panic("nil engine passed to NewAdminHandler")
	}
	return &AdminHandler{Engine: engine, Payment: payment, Log: orNop(log)}
}

type verifyReq struct {
	Approve *bool `json:"approve"`
}

var validStatus = map[string]bool{
	"":                   true,
	model.StatusPending:  true,
	model.StatusApproved: true,
	model.StatusRejected: true,
}

// ListBookings: GET /v1/admin/bookings?status=.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	status := c.QueryParam("status")
	if !validStatus[status] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending, approved or rejected"})
	}
	items, err := h.Engine.BookingsByStatus(c.Request().Context(), status)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Stats: GET /v1/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.Engine.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Verify: POST /v1/admin/bookings/:id/verify with {"approve": bool}.
func (h *AdminHandler) Verify(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil || req.Approve == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approve (bool) required"})
	}
	s, ok := middleware.Session(c)
	if !ok {
		return respondError(c, h.Log, booking.ErrNotAuthenticated)
	}
	b, err := s.Verify(c.Request().Context(), c.Param("id"), *req.Approve)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

// PaymentDetails: GET /v1/admin/payment-details.
func (h *AdminHandler) PaymentDetails(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Payment)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/middleware"
)

// PatronHandler drives the caller's session draft and bookings.  Every
// route runs behind JWTAuth, which binds the session.
type PatronHandler struct {
	Log *zap.Logger
}

func NewPatronHandler(log *zap.Logger) *PatronHandler {
	return &PatronHandler{Log: orNop(log)}
}

type selectFixtureReq struct {
	FixtureID string `json:"fixture_id"`
}

type submitReq struct {
	PaymentReference string `json:"payment_reference"`
}

func (h *PatronHandler) session(c echo.Context) (*booking.Session, error) {
	s, ok := middleware.Session(c)
	if !ok {
		return nil, booking.ErrNotAuthenticated
	}
	return s, nil
}

// SelectFixture: PUT /v1/draft.
func (h *PatronHandler) SelectFixture(c echo.Context) error {
	var req selectFixtureReq
	if err := c.Bind(&req); err != nil || req.FixtureID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fixture_id required"})
	}
	s, err := h.session(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	view, err := s.SelectFixture(c.Request().Context(), req.FixtureID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetDraft: GET /v1/draft.
func (h *PatronHandler) GetDraft(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, s.Draft())
}

// ToggleSeat: POST /v1/draft/seats/:seat.
func (h *PatronHandler) ToggleSeat(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	view, err := s.ToggleSeat(c.Param("seat"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, view)
}

// ClearSelection: DELETE /v1/draft/seats.
func (h *PatronHandler) ClearSelection(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	view, err := s.ClearSelection()
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Submit: POST /v1/draft/submit.
func (h *PatronHandler) Submit(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s, err := h.session(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	b, err := s.Submit(c.Request().Context(), req.PaymentReference)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// MyBookings: GET /v1/my-bookings.
func (h *PatronHandler) MyBookings(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	items, err := s.MyBookings(c.Request().Context())
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Ticket: GET /v1/bookings/:id/ticket.
func (h *PatronHandler) Ticket(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	t, err := s.Ticket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, t)
}

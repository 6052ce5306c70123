package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/catalog"
	"github.com/iliyamo/fixture-tickets/internal/model"
	"github.com/iliyamo/fixture-tickets/internal/seating"
)

// PublicHandler serves the unauthenticated catalog: fixtures, seat maps,
// search facets and payment instructions.
type PublicHandler struct {
	Catalog catalog.Catalog
	Engine  *booking.Engine
	Payment model.PaymentDetails
	Log     *zap.Logger
}

func NewPublicHandler(cat catalog.Catalog, engine *booking.Engine, payment model.PaymentDetails, log *zap.Logger) *PublicHandler {
	if cat == nil || engine == nil {
		panic("nil catalog or engine passed to NewPublicHandler")
	}
	return &PublicHandler{Catalog: cat, Engine: engine, Payment: payment, Log: orNop(log)}
}

// ListFixtures: GET /v1/fixtures?team=&venue=.
func (h *PublicHandler) ListFixtures(c echo.Context) error {
	q := catalog.Query{Team: c.QueryParam("team"), Venue: c.QueryParam("venue")}
	items, err := h.Catalog.Search(c.Request().Context(), q)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetFixture: GET /v1/fixtures/:id.
func (h *PublicHandler) GetFixture(c echo.Context) error {
	f, err := h.Catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, f)
}

// FixtureSeats: GET /v1/fixtures/:id/seats.  The map is re-sampled on
// every call; seats held by live bookings are always shown unavailable.
func (h *PublicHandler) FixtureSeats(c echo.Context) error {
	ctx := c.Request().Context()
	f, err := h.Catalog.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	seats, err := seating.ForFixture(f, nil)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	taken, err := h.Engine.TakenSeats(ctx, f.ID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	seating.MarkTaken(seats, taken)
	return c.JSON(http.StatusOK, echo.Map{
		"fixture_id":    f.ID,
		"seats_per_row": seating.SeatsPerRow(f.Capacity),
		"seats":         seats,
	})
}

// Teams: GET /v1/teams?q=.
func (h *PublicHandler) Teams(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": catalog.Teams(c.QueryParam("q"))})
}

// Venues: GET /v1/venues.
func (h *PublicHandler) Venues(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": catalog.Venues()})
}

// PaymentDetails: GET /v1/payment-details.
func (h *PublicHandler) PaymentDetails(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Payment)
}

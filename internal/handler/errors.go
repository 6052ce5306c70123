package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/catalog"
)

// statusFor maps booking and catalog errors to HTTP status codes.
// Unknown errors are server errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrNotAuthenticated),
		errors.Is(err, booking.ErrInvalidCredentials),
		errors.Is(err, booking.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, booking.ErrNotPatron),
		errors.Is(err, booking.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, catalog.ErrFixtureNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrEmailExists),
		errors.Is(err, booking.ErrBookingSettled),
		errors.Is(err, booking.ErrSeatTaken),
		errors.Is(err, booking.ErrNoDraft),
		errors.Is(err, booking.ErrTicketNotAvailable):
		return http.StatusConflict
	case booking.IsValidation(err):
		return http.StatusUnprocessableEntity
	case booking.IsPrecondition(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": ...}.  Internal failures are logged and
// their details hidden from the client.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("route", c.Path()), zap.String("method", c.Request().Method), zap.Error(err))
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

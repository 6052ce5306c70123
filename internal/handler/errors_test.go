package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/catalog"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{booking.ErrNotAuthenticated, http.StatusUnauthorized},
		{booking.ErrInvalidCredentials, http.StatusUnauthorized},
		{booking.ErrSessionNotFound, http.StatusUnauthorized},
		{booking.ErrNotPatron, http.StatusForbidden},
		{booking.ErrNotAdmin, http.StatusForbidden},
		{booking.ErrBookingNotFound, http.StatusNotFound},
		{catalog.ErrFixtureNotFound, http.StatusNotFound},
		{booking.ErrEmailExists, http.StatusConflict},
		{booking.ErrBookingSettled, http.StatusConflict},
		{fmt.Errorf("append booking: %w: A1", booking.ErrSeatTaken), http.StatusConflict},
		{booking.ErrNoDraft, http.StatusConflict},
		{booking.ErrTicketNotAvailable, http.StatusConflict},
		{booking.ErrNoSeatsSelected, http.StatusUnprocessableEntity},
		{booking.ErrPaymentReferenceRequired, http.StatusUnprocessableEntity},
		{booking.ErrUnknownSeat, http.StatusUnprocessableEntity},
		{booking.ErrInvalidRegistration, http.StatusUnprocessableEntity},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/fixtures", nil), rec)

	assert.NoError(t, respondError(c, zap.New(core), errors.New("dial tcp 10.0.0.1:3306: refused")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
	assert.Equal(t, 1, logs.Len())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/fixtures/9", nil), rec)
	assert.NoError(t, respondError(c, zap.New(core), catalog.ErrFixtureNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "fixture not found")
	assert.Equal(t, 1, logs.Len(), "client errors are not logged")
}

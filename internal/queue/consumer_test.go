package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fixture-tickets/internal/model"
)

func sampleBooking() model.Booking {
	at := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return model.Booking{
		ID: "b1", FixtureID: "1", SeatIDs: []string{"A1", "A2"}, TotalPrice: 170,
		PaymentReference: "TXN1", Status: model.StatusApproved, OwnerID: "u1",
		OwnerEmail: "john@example.com", CreatedAt: at.Add(-time.Hour), VerifiedAt: &at, VerifiedBy: "admin",
	}
}

func TestAuditLine(t *testing.T) {
	submitted, err := json.Marshal(NewBookingSubmitted(sampleBooking()))
	require.NoError(t, err)
	line, err := AuditLine(submitted)
	require.NoError(t, err)
	assert.Equal(t, `[2026-01-10T11:00:00Z] Booking submitted | booking_id=b1 | user_id=u1 | fixture_id=1 | total=170 | ref="TXN1" | seats=[A1,A2]`, line)

	verified, err := json.Marshal(NewBookingVerified(sampleBooking()))
	require.NoError(t, err)
	line, err = AuditLine(verified)
	require.NoError(t, err)
	assert.Equal(t, `[2026-01-10T12:00:00Z] Booking approved | booking_id=b1 | user_id=u1 | fixture_id=1 | by=admin`, line)

	_, err = AuditLine([]byte(`{"type":"booking.cancelled"}`))
	assert.ErrorContains(t, err, "unknown event type")
	_, err = AuditLine([]byte(`not json`))
	assert.Error(t, err)
}

func TestConsumer_HandleMessageAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := &Consumer{LogDir: dir}

	body, err := json.Marshal(NewBookingSubmitted(sampleBooking()))
	require.NoError(t, err)
	require.NoError(t, c.handleMessage(body))
	require.NoError(t, c.handleMessage(body))
	assert.Error(t, c.handleMessage([]byte(`{}`)))

	data, err := os.ReadFile(filepath.Join(dir, "booking.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
}

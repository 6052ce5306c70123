package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/fixture-tickets/internal/model"
)

func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// DemoBookings is the sample ledger used by demo deployments: one approved,
// one pending and one rejected booking.
func DemoBookings() []model.Booking {
	approvedAt := seedTime("2026-01-10T12:00:00Z")
	rejectedAt := seedTime("2026-01-11T11:00:00Z")
	return []model.Booking{
		{
			ID: "b1", FixtureID: "1", SeatIDs: []string{"A1", "A2"}, TotalPrice: 170,
			PaymentReference: "TXN123456789", Status: model.StatusApproved,
			OwnerID: "user1", OwnerName: "John Doe", OwnerEmail: "john@example.com",
			CreatedAt: seedTime("2026-01-10T10:30:00Z"), VerifiedAt: &approvedAt, VerifiedBy: "admin",
		},
		{
			ID: "b2", FixtureID: "3", SeatIDs: []string{"C5", "C6", "C7"}, TotalPrice: 330,
			PaymentReference: "TXN987654321", Status: model.StatusPending,
			OwnerID: "user1", OwnerName: "John Doe", OwnerEmail: "john@example.com",
			CreatedAt: seedTime("2026-01-12T14:20:00Z"),
		},
		{
			ID: "b3", FixtureID: "2", SeatIDs: []string{"B3"}, TotalPrice: 95,
			PaymentReference: "TXN555555555", Status: model.StatusRejected,
			OwnerID: "user2", OwnerName: "Jane Smith", OwnerEmail: "jane@example.com",
			CreatedAt: seedTime("2026-01-11T09:15:00Z"), VerifiedAt: &rejectedAt, VerifiedBy: "admin",
		},
	}
}

// Seed appends bookings that are not yet in the ledger.  It is safe to
// call on every start.
func Seed(ctx context.Context, l Ledger, bookings []model.Booking) (int, error) {
	added := 0
	for _, b := range bookings {
		if _, err := l.Get(ctx, b.ID); err == nil {
			continue
		}
		if err := l.Append(ctx, b); err != nil {
			return added, fmt.Errorf("seed booking %s: %w", b.ID, err)
		}
		added++
	}
	return added, nil
}

// Package queue defines the booking event payloads exchanged over RabbitMQ
// and the consumer that turns them into audit log lines.
package queue

import (
	"time"

	"github.com/iliyamo/fixture-tickets/internal/model"
)

// Event type discriminators carried in every payload's "type" field.
const (
	TypeBookingSubmitted = "booking.submitted"
	TypeBookingVerified  = "booking.verified"
)

// DefaultQueue is the durable queue both events are published to.
const DefaultQueue = "booking.events"

// BookingSubmittedEvent is published when a patron submits a booking for
// payment verification.
type BookingSubmittedEvent struct {
	Type             string   `json:"type"`
	BookingID        string   `json:"booking_id"`
	FixtureID        string   `json:"fixture_id"`
	UserID           string   `json:"user_id"`
	UserEmail        string   `json:"user_email"`
	Seats            []string `json:"seats"`
	TotalPrice       int64    `json:"total_price"`
	PaymentReference string   `json:"payment_reference"`
	SubmittedAt      string   `json:"submitted_at"`
}

// BookingVerifiedEvent is published when an admin approves or rejects a
// pending booking.
type BookingVerifiedEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	FixtureID  string `json:"fixture_id"`
	UserID     string `json:"user_id"`
	Status     string `json:"status"`
	VerifiedBy string `json:"verified_by"`
	VerifiedAt string `json:"verified_at"`
}

func NewBookingSubmitted(b model.Booking) BookingSubmittedEvent {
	return BookingSubmittedEvent{
		Type:             TypeBookingSubmitted,
		BookingID:        b.ID,
		FixtureID:        b.FixtureID,
		UserID:           b.OwnerID,
		UserEmail:        b.OwnerEmail,
		Seats:            append([]string(nil), b.SeatIDs...),
		TotalPrice:       b.TotalPrice,
		PaymentReference: b.PaymentReference,
		SubmittedAt:      b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewBookingVerified(b model.Booking) BookingVerifiedEvent {
	ev := BookingVerifiedEvent{
		Type:       TypeBookingVerified,
		BookingID:  b.ID,
		FixtureID:  b.FixtureID,
		UserID:     b.OwnerID,
		Status:     b.Status,
		VerifiedBy: b.VerifiedBy,
	}
	if b.VerifiedAt != nil {
		ev.VerifiedAt = b.VerifiedAt.UTC().Format(time.RFC3339)
	}
	return ev
}

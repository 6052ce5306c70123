package model

import "time"

// Booking statuses.  A booking starts PENDING and moves exactly once to
// APPROVED or REJECTED.
const (
    StatusPending  = "pending"
    StatusApproved = "approved"
    StatusRejected = "rejected"
)

// Booking records a patron's submitted seat selection for a fixture
// together with the off-platform payment reference awaiting review.
// Everything except Status (and the verification audit fields) is fixed
// at creation.
//
// Fields:
//  ID               – booking identifier.
//  FixtureID        – fixture the seats belong to.
//  SeatIDs          – selected seats in selection order, no duplicates.
//  TotalPrice       – len(SeatIDs) × fixture unit price at submission.
//  PaymentReference – transaction id the patron supplied.
//  Status           – pending, approved or rejected.
//  OwnerID          – identity id of the patron.
//  OwnerName        – patron display name at submission.
//  OwnerEmail       – patron email at submission.
//  CreatedAt        – submission timestamp (UTC).
//  VerifiedAt       – when an admin settled the booking (nil while pending).
//  VerifiedBy       – admin identity id that settled the booking.
type Booking struct {
    ID               string     `json:"id"`
    FixtureID        string     `json:"fixture_id"`
    SeatIDs          []string   `json:"seats"`
    TotalPrice       int64      `json:"total_price"`
    PaymentReference string     `json:"payment_reference"`
    Status           string     `json:"status"`
    OwnerID          string     `json:"user_id"`
    OwnerName        string     `json:"user_name"`
    OwnerEmail       string     `json:"user_email"`
    CreatedAt        time.Time  `json:"created_at"`
    VerifiedAt       *time.Time `json:"verified_at,omitempty"`
    VerifiedBy       string     `json:"verified_by,omitempty"`
}

// Settled reports whether the booking has left the pending state.
func (b Booking) Settled() bool { return b.Status != StatusPending }

// HoldsSeats reports whether the booking still claims its seats.
// Rejected bookings release them.
func (b Booking) HoldsSeats() bool {
    return b.Status == StatusPending || b.Status == StatusApproved
}

// Clone returns a copy that shares no slices or pointers with b.
func (b Booking) Clone() Booking {
    out := b
    out.SeatIDs = append([]string(nil), b.SeatIDs...)
    if b.VerifiedAt != nil {
        t := *b.VerifiedAt
        out.VerifiedAt = &t
    }
    return out
}

// Ticket is the downloadable admission document for an approved booking.
type Ticket struct {
    BookingID        string   `json:"booking_id"`
    HolderName       string   `json:"holder_name"`
    HolderEmail      string   `json:"holder_email"`
    Match            string   `json:"match"`
    Venue            string   `json:"venue"`
    Date             string   `json:"date"`
    Time             string   `json:"time"`
    Seats            []string `json:"seats"`
    TotalPrice       int64    `json:"total_price"`
    PaymentReference string   `json:"payment_reference"`
}

// BookingStats summarises the ledger for the admin dashboard.
type BookingStats struct {
    Total    int `json:"total"`
    Pending  int `json:"pending"`
    Approved int `json:"approved"`
    Rejected int `json:"rejected"`
}

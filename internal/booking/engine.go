// Package booking implements the booking lifecycle: drafting a seat
// selection, submitting it with a payment reference, and admin
// verification of the pending booking.
package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/fixture-tickets/internal/clock"
	"github.com/iliyamo/fixture-tickets/internal/model"
)

// Notifier is told about completed transitions.  Errors are logged by the
// engine and never undo a transition.
type Notifier interface {
	BookingSubmitted(ctx context.Context, b model.Booking) error
	BookingVerified(ctx context.Context, b model.Booking) error
}

// FixtureLookup resolves fixtures for ticket rendering.
type FixtureLookup interface {
	Get(ctx context.Context, id string) (model.Fixture, error)
}

type nopNotifier struct{}

func (nopNotifier) BookingSubmitted(context.Context, model.Booking) error { return nil }
func (nopNotifier) BookingVerified(context.Context, model.Booking) error  { return nil }

// Engine applies lifecycle transitions against a shared Ledger.
type Engine struct {
	ledger   Ledger
	fixtures FixtureLookup
	clock    clock.Clock
	notifier Notifier
	log      *zap.Logger
	newID    func() string
}

// Deps bundles the engine's collaborators.  Ledger and Fixtures are
// required; the rest default to a system clock, no notifications and a
// no-op logger.
type Deps struct {
	Ledger   Ledger
	Fixtures FixtureLookup
	Clock    clock.Clock
	Notifier Notifier
	Logger   *zap.Logger
}

func NewEngine(d Deps) *Engine {
	if d.Ledger == nil || d.Fixtures == nil {
		panic("nil ledger or fixture lookup passed to NewEngine")
	}
	e := &Engine{
		ledger:   d.Ledger,
		fixtures: d.Fixtures,
		clock:    d.Clock,
		notifier: d.Notifier,
		log:      d.Logger,
		newID:    func() string { return "b_" + uuid.NewString() },
	}
	if e.clock == nil {
		e.clock = clock.NewSystem()
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e
}

// Submit turns the draft into a pending booking owned by who.  On success
// the draft is reset; on failure it is left as it was.
func (e *Engine) Submit(ctx context.Context, who *model.Identity, d *Draft, paymentRef string) (model.Booking, error) {
	switch {
	case who == nil:
		return model.Booking{}, ErrNotAuthenticated
	case !who.IsPatron():
		return model.Booking{}, ErrNotPatron
	case !d.Active():
		return model.Booking{}, ErrNoDraft
	case len(d.seats) == 0:
		return model.Booking{}, ErrNoSeatsSelected
	}
	ref := strings.TrimSpace(paymentRef)
	if ref == "" {
		return model.Booking{}, ErrPaymentReferenceRequired
	}

	f := d.fixture
	b := model.Booking{
		ID:               e.newID(),
		FixtureID:        f.ID,
		SeatIDs:          append([]string(nil), d.seats...),
		TotalPrice:       int64(len(d.seats)) * f.UnitPrice,
		PaymentReference: ref,
		Status:           model.StatusPending,
		OwnerID:          who.ID,
		OwnerName:        who.DisplayName,
		OwnerEmail:       who.Email,
		CreatedAt:        e.clock.Now(),
	}
	if err := e.ledger.Append(ctx, b); err != nil {
		e.log.Debug("submit rejected by ledger",
			zap.String("fixture_id", f.ID), zap.Strings("seats", b.SeatIDs), zap.Error(err))
		return model.Booking{}, fmt.Errorf("append booking: %w", err)
	}
	d.Reset()

	e.log.Info("booking submitted",
		zap.String("booking_id", b.ID),
		zap.String("fixture_id", b.FixtureID),
		zap.String("owner_id", b.OwnerID),
		zap.Int("seats", len(b.SeatIDs)),
		zap.Int64("total_price", b.TotalPrice))
	if err := e.notifier.BookingSubmitted(ctx, b); err != nil {
		e.log.Warn("publish booking submitted failed", zap.String("booking_id", b.ID), zap.Error(err))
	}
	return b, nil
}

// Verify settles a pending booking.  Only admins may verify, and a booking
// can be settled once.
func (e *Engine) Verify(ctx context.Context, who *model.Identity, bookingID string, approve bool) (model.Booking, error) {
	if who == nil {
		return model.Booking{}, ErrNotAuthenticated
	}
	if !who.IsAdmin() {
		return model.Booking{}, ErrNotAdmin
	}
	status := model.StatusRejected
	if approve {
		status = model.StatusApproved
	}
	b, err := e.ledger.Settle(ctx, bookingID, status, who.ID, e.clock.Now())
	if err != nil {
		e.log.Debug("verify rejected",
			zap.String("booking_id", bookingID), zap.String("status", status), zap.Error(err))
		return b, err
	}

	e.log.Info("booking verified",
		zap.String("booking_id", b.ID),
		zap.String("status", b.Status),
		zap.String("admin_id", who.ID))
	if err := e.notifier.BookingVerified(ctx, b); err != nil {
		e.log.Warn("publish booking verified failed", zap.String("booking_id", b.ID), zap.Error(err))
	}
	return b, nil
}

// BookingsFor returns the ledger entries owned by userID in ledger order.
func (e *Engine) BookingsFor(ctx context.Context, userID string) ([]model.Booking, error) {
	return e.ledger.ListByOwner(ctx, userID)
}

// AllBookings returns the whole ledger in insertion order.
func (e *Engine) AllBookings(ctx context.Context) ([]model.Booking, error) {
	return e.ledger.List(ctx)
}

// Booking looks up one ledger entry.
func (e *Engine) Booking(ctx context.Context, id string) (model.Booking, error) {
	return e.ledger.Get(ctx, id)
}

// BookingsByStatus filters the ledger by status; an empty status returns
// everything.
func (e *Engine) BookingsByStatus(ctx context.Context, status string) ([]model.Booking, error) {
	all, err := e.ledger.List(ctx)
	if err != nil || status == "" {
		return all, err
	}
	out := []model.Booking{}
	for _, b := range all {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

// Stats counts ledger entries per status.
func (e *Engine) Stats(ctx context.Context) (model.BookingStats, error) {
	all, err := e.ledger.List(ctx)
	if err != nil {
		return model.BookingStats{}, err
	}
	var s model.BookingStats
	for _, b := range all {
		s.Total++
		switch b.Status {
		case model.StatusPending:
			s.Pending++
		case model.StatusApproved:
			s.Approved++
		case model.StatusRejected:
			s.Rejected++
		}
	}
	return s, nil
}

// TakenSeats lists seats claimed by live bookings for a fixture.
func (e *Engine) TakenSeats(ctx context.Context, fixtureID string) ([]string, error) {
	return e.ledger.TakenSeats(ctx, fixtureID)
}

// Ticket renders the admission ticket for an approved booking owned by who.
// Other owners see ErrBookingNotFound.
func (e *Engine) Ticket(ctx context.Context, who *model.Identity, bookingID string) (model.Ticket, error) {
	if who == nil {
		return model.Ticket{}, ErrNotAuthenticated
	}
	b, err := e.ledger.Get(ctx, bookingID)
	if err != nil {
		return model.Ticket{}, err
	}
	if b.OwnerID != who.ID && !who.IsAdmin() {
		return model.Ticket{}, ErrBookingNotFound
	}
	if b.Status != model.StatusApproved {
		return model.Ticket{}, ErrTicketNotAvailable
	}
	f, err := e.fixtures.Get(ctx, b.FixtureID)
	if err != nil {
		return model.Ticket{}, fmt.Errorf("load fixture %s: %w", b.FixtureID, err)
	}
	return model.Ticket{
		BookingID:        b.ID,
		HolderName:       b.OwnerName,
		HolderEmail:      b.OwnerEmail,
		Match:            f.Title(),
		Venue:            f.Venue,
		Date:             f.Date,
		Time:             f.Time,
		Seats:            append([]string(nil), b.SeatIDs...),
		TotalPrice:       b.TotalPrice,
		PaymentReference: b.PaymentReference,
	}, nil
}

// PendingBookings is the admin verification queue.
func (e *Engine) PendingBookings(ctx context.Context) ([]model.Booking, error) {
	return e.BookingsByStatus(ctx, model.StatusPending)
}

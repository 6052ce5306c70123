package booking

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fixture-tickets/internal/catalog"
	"github.com/iliyamo/fixture-tickets/internal/clock"
	"github.com/iliyamo/fixture-tickets/internal/identity"
	"github.com/iliyamo/fixture-tickets/internal/model"
	"github.com/iliyamo/fixture-tickets/internal/seating"
)

var t0 = time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu        sync.Mutex
	submitted []model.Booking
	verified  []model.Booking
	err       error
}

func (n *recordingNotifier) BookingSubmitted(ctx context.Context, b model.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, b)
	return n.err
}

func (n *recordingNotifier) BookingVerified(ctx context.Context, b model.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verified = append(n.verified, b)
	return n.err
}

type harness struct {
	engine   *Engine
	ledger   *MemoryLedger
	clock    *clock.Manual
	notifier *recordingNotifier
	sessions *Sessions
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		ledger:   NewMemoryLedger(),
		clock:    clock.NewManual(t0),
		notifier: &recordingNotifier{},
	}
	h.engine = NewEngine(Deps{
		Ledger:   h.ledger,
		Fixtures: catalog.NewStatic(catalog.DefaultFixtures()),
		Clock:    h.clock,
		Notifier: h.notifier,
	})
	h.sessions = NewSessions(identity.NewDemoGate(), h.engine, 30*time.Minute, nil)
	return h
}

func (h *harness) patron(t *testing.T, email string) *Session {
	t.Helper()
	s := h.sessions.Open()
	_, err := s.Login(context.Background(), email, "123456")
	require.NoError(t, err)
	return s
}

func (h *harness) admin(t *testing.T) *Session {
	t.Helper()
	s := h.sessions.Open()
	_, err := s.Login(context.Background(), identity.AdminEmail, identity.AdminPassword)
	require.NoError(t, err)
	return s
}

func TestEndToEndScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	f, err := catalog.NewStatic(catalog.DefaultFixtures()).Get(ctx, "1")
	require.NoError(t, err)
	seats, err := seating.ForFixture(f, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	require.Len(t, seats, 200)
	unavailable := 0
	for _, s := range seats {
		if !s.Available {
			unavailable++
		}
	}
	assert.Equal(t, 44, unavailable)

	patronSession := h.sessions.Open()
	patron, err := patronSession.Login(ctx, "a@b.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, model.RolePatron, patron.Role)

	_, err = patronSession.SelectFixture(ctx, "1")
	require.NoError(t, err)
	_, err = patronSession.ToggleSeat("A1")
	require.NoError(t, err)
	view, err := patronSession.ToggleSeat("A2")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, view.SeatIDs)
	assert.EqualValues(t, 170, view.TotalPrice)

	b, err := patronSession.Submit(ctx, "TXN1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, b.Status)
	assert.EqualValues(t, 170, b.TotalPrice)
	assert.Equal(t, "1", b.FixtureID)
	assert.Equal(t, patron.ID, b.OwnerID)
	assert.Equal(t, t0, b.CreatedAt)
	assert.Nil(t, patronSession.Draft().Fixture, "draft cleared after submit")

	adminSession := h.admin(t)
	h.clock.Advance(time.Hour)
	verified, err := adminSession.Verify(ctx, b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, verified.Status)
	require.NotNil(t, verified.VerifiedAt)
	assert.Equal(t, t0.Add(time.Hour), *verified.VerifiedAt)
	assert.Equal(t, identity.AdminID, verified.VerifiedBy)

	mine, err := patronSession.BookingsFor(ctx, patron.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)
	assert.Equal(t, model.StatusApproved, mine[0].Status)

	assert.Len(t, h.notifier.submitted, 1)
	assert.Len(t, h.notifier.verified, 1)
}

func TestSubmit_Failures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	anon := h.sessions.Open()
	_, err := anon.SelectFixture(ctx, "1")
	require.NoError(t, err)
	_, err = anon.ToggleSeat("A1")
	require.NoError(t, err)
	_, err = anon.Submit(ctx, "TXN1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.True(t, IsValidation(err))
	assert.Equal(t, []string{"A1"}, anon.Draft().SeatIDs, "failed submit keeps the draft")

	p := h.patron(t, "p@x.com")
	_, err = p.Submit(ctx, "TXN1")
	assert.ErrorIs(t, err, ErrNoDraft)
	assert.True(t, IsPrecondition(err))

	_, err = p.SelectFixture(ctx, "2")
	require.NoError(t, err)
	_, err = p.Submit(ctx, "TXN1")
	assert.ErrorIs(t, err, ErrNoSeatsSelected)

	_, err = p.ToggleSeat("B1")
	require.NoError(t, err)
	_, err = p.Submit(ctx, "   ")
	assert.ErrorIs(t, err, ErrPaymentReferenceRequired)

	a := h.admin(t)
	_, err = a.SelectFixture(ctx, "2")
	require.NoError(t, err)
	_, err = a.ToggleSeat("B2")
	require.NoError(t, err)
	_, err = a.Submit(ctx, "TXN2")
	assert.ErrorIs(t, err, ErrNotPatron)

	all, err := h.engine.AllBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no failed submit touches the ledger")

	b, err := p.Submit(ctx, "  TXN9  ")
	require.NoError(t, err)
	assert.Equal(t, "TXN9", b.PaymentReference)
}

func TestSubmit_SeatTakenUntilRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	first := h.patron(t, "first@x.com")
	second := h.patron(t, "second@x.com")

	_, err := first.SelectFixture(ctx, "4")
	require.NoError(t, err)
	_, err = first.ToggleSeat("C3")
	require.NoError(t, err)
	b, err := first.Submit(ctx, "TXN-A")
	require.NoError(t, err)

	_, err = second.SelectFixture(ctx, "4")
	require.NoError(t, err)
	_, err = second.ToggleSeat("C3")
	require.NoError(t, err)
	_, err = second.Submit(ctx, "TXN-B")
	assert.ErrorIs(t, err, ErrSeatTaken)
	assert.Equal(t, []string{"C3"}, second.Draft().SeatIDs)

	taken, err := h.engine.TakenSeats(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, []string{"C3"}, taken)

	_, err = h.admin(t).Verify(ctx, b.ID, false)
	require.NoError(t, err)

	_, err = second.Submit(ctx, "TXN-B")
	require.NoError(t, err, "rejected booking releases its seats")
}

func TestVerify(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.patron(t, "v@x.com")
	_, err := p.SelectFixture(ctx, "5")
	require.NoError(t, err)
	_, err = p.ToggleSeat("A1")
	require.NoError(t, err)
	b, err := p.Submit(ctx, "TXN1")
	require.NoError(t, err)

	_, err = p.Verify(ctx, b.ID, true)
	assert.ErrorIs(t, err, ErrNotAdmin)

	_, err = h.sessions.Open().Verify(ctx, b.ID, true)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	a := h.admin(t)
	_, err = a.Verify(ctx, "missing", true)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = a.Verify(ctx, b.ID, true)
	require.NoError(t, err)

	again, err := a.Verify(ctx, b.ID, false)
	assert.ErrorIs(t, err, ErrBookingSettled)
	assert.Equal(t, model.StatusApproved, again.Status)

	got, err := h.engine.Booking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
	assert.Len(t, h.notifier.verified, 1)
}

func TestNotifierFailureDoesNotUndoTransition(t *testing.T) {
	h := newHarness(t)
	h.notifier.err = errors.New("broker down")
	ctx := context.Background()
	p := h.patron(t, "n@x.com")
	_, err := p.SelectFixture(ctx, "1")
	require.NoError(t, err)
	_, err = p.ToggleSeat("J9")
	require.NoError(t, err)

	b, err := p.Submit(ctx, "TXN1")
	require.NoError(t, err)
	_, err = h.admin(t).Verify(ctx, b.ID, true)
	require.NoError(t, err)
}

func TestBookingsForAndStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	added, err := Seed(ctx, h.ledger, DemoBookings())
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = Seed(ctx, h.ledger, DemoBookings())
	require.NoError(t, err)
	assert.Zero(t, added, "seeding twice is a no-op")

	user1, err := h.engine.BookingsFor(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, user1, 2)
	assert.Equal(t, "b1", user1[0].ID)
	assert.Equal(t, "b2", user1[1].ID)

	none, err := h.engine.BookingsFor(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)

	stats, err := h.engine.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1}, stats)

	pending, err := h.engine.PendingBookings(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b2", pending[0].ID)

	all, err := h.engine.BookingsByStatus(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTicket(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := Seed(ctx, h.ledger, DemoBookings())
	require.NoError(t, err)

	john := &model.Identity{ID: "user1", DisplayName: "John Doe", Role: model.RolePatron}
	jane := &model.Identity{ID: "user2", DisplayName: "Jane Smith", Role: model.RolePatron}

	tk, err := h.engine.Ticket(ctx, john, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Manchester United vs Liverpool FC", tk.Match)
	assert.Equal(t, "Old Trafford", tk.Venue)
	assert.Equal(t, []string{"A1", "A2"}, tk.Seats)
	assert.EqualValues(t, 170, tk.TotalPrice)

	_, err = h.engine.Ticket(ctx, john, "b2")
	assert.ErrorIs(t, err, ErrTicketNotAvailable)

	_, err = h.engine.Ticket(ctx, jane, "b1")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = h.engine.Ticket(ctx, jane, "b3")
	assert.ErrorIs(t, err, ErrTicketNotAvailable)

	_, err = h.engine.Ticket(ctx, nil, "b1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

package booking

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/fixture-tickets/internal/identity"
	"github.com/iliyamo/fixture-tickets/internal/model"
)

// Session is one client's view of the system: who is logged in and what
// they are drafting.  All methods are serialized by the session mutex.
type Session struct {
	id     string
	gate   identity.Gate
	engine *Engine

	mu       sync.Mutex
	who      *model.Identity
	draft    Draft
	lastSeen time.Time
}

// NewSession creates an anonymous session.
func NewSession(id string, gate identity.Gate, engine *Engine) *Session {
	if gate == nil || engine == nil {
		panic("nil gate or engine passed to NewSession")
	}
	return &Session{id: id, gate: gate, engine: engine, lastSeen: engine.clock.Now()}
}

func (s *Session) ID() string { return s.id }

// Login authenticates through the gate.  A failed attempt leaves the
// session untouched; a different identity starts with an empty draft.
func (s *Session) Login(ctx context.Context, email, password string) (model.Identity, error) {
	who, err := s.gate.Authenticate(ctx, email, password)
	if err != nil {
		return model.Identity{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adopt(who)
	return who, nil
}

// Register creates a patron identity and logs it in.
func (s *Session) Register(ctx context.Context, name, email, password string) (model.Identity, error) {
	who, err := s.gate.Register(ctx, name, email, password)
	if err != nil {
		return model.Identity{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adopt(who)
	return who, nil
}

func (s *Session) adopt(who model.Identity) {
	if s.who == nil || s.who.ID != who.ID {
		s.draft.Reset()
	}
	s.who = &who
}

// Restore binds an identity that was authenticated elsewhere, for example
// by a bearer token, without consulting the gate.
func (s *Session) Restore(who model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adopt(who)
}

// Logout drops the identity and the draft.  The ledger is untouched.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.who = nil
	s.draft.Reset()
}

// Identity returns the logged in identity, if any.
func (s *Session) Identity() (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.who == nil {
		return model.Identity{}, false
	}
	return *s.who, true
}

// SelectFixture starts a fresh draft for fixtureID, discarding any other.
func (s *Session) SelectFixture(ctx context.Context, fixtureID string) (DraftView, error) {
	f, err := s.engine.fixtures.Get(ctx, fixtureID)
	if err != nil {
		return DraftView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Select(f)
	return s.draft.View(), nil
}

func (s *Session) ToggleSeat(seatID string) (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.draft.Toggle(seatID); err != nil {
		return s.draft.View(), err
	}
	return s.draft.View(), nil
}

func (s *Session) ClearSelection() (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.draft.Clear(); err != nil {
		return s.draft.View(), err
	}
	return s.draft.View(), nil
}

// Draft returns a snapshot of the current draft.
func (s *Session) Draft() DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.View()
}

// Submit books the drafted seats for the logged in patron.
func (s *Session) Submit(ctx context.Context, paymentRef string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Submit(ctx, s.who, &s.draft, paymentRef)
}

// Verify settles a pending booking as the logged in admin.
func (s *Session) Verify(ctx context.Context, bookingID string, approve bool) (model.Booking, error) {
	s.mu.Lock()
	who := s.who
	s.mu.Unlock()
	return s.engine.Verify(ctx, who, bookingID, approve)
}

func (s *Session) BookingsFor(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.engine.BookingsFor(ctx, userID)
}

// MyBookings lists the logged in identity's bookings.
func (s *Session) MyBookings(ctx context.Context) ([]model.Booking, error) {
	who, ok := s.Identity()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return s.engine.BookingsFor(ctx, who.ID)
}

func (s *Session) AllBookings(ctx context.Context) ([]model.Booking, error) {
	return s.engine.AllBookings(ctx)
}

// Ticket renders the ticket for one of the caller's approved bookings.
func (s *Session) Ticket(ctx context.Context, bookingID string) (model.Ticket, error) {
	s.mu.Lock()
	who := s.who
	s.mu.Unlock()
	return s.engine.Ticket(ctx, who, bookingID)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

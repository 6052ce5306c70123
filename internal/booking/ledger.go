package booking

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/fixture-tickets/internal/model"
)

// Ledger stores submitted bookings in insertion order.  Implementations
// must be safe for concurrent use.
//
// Append rejects a booking with ErrSeatTaken when any of its seats is
// already held by a pending or approved booking for the same fixture.
// Settle moves a pending booking to a terminal status and fails with
// ErrBookingSettled when the booking is no longer pending.
type Ledger interface {
	Append(ctx context.Context, b model.Booking) error
	Get(ctx context.Context, id string) (model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Booking, error)
	Settle(ctx context.Context, id, status, verifiedBy string, at time.Time) (model.Booking, error)
	TakenSeats(ctx context.Context, fixtureID string) ([]string, error)
}

// MemoryLedger is the process-local Ledger.
type MemoryLedger struct {
	mu    sync.RWMutex
	items []model.Booking
	index map[string]int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{index: make(map[string]int)}
}

func (l *MemoryLedger) Append(ctx context.Context, b model.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.index[b.ID]; exists {
		return ErrDuplicateBooking
	}
	if len(b.SeatIDs) > 0 {
		want := make(map[string]struct{}, len(b.SeatIDs))
		for _, s := range b.SeatIDs {
			want[s] = struct{}{}
		}
		for _, existing := range l.items {
			if existing.FixtureID != b.FixtureID || !existing.HoldsSeats() {
				continue
			}
			for _, s := range existing.SeatIDs {
				if _, clash := want[s]; clash {
					return ErrSeatTaken
				}
			}
		}
	}
	l.index[b.ID] = len(l.items)
	l.items = append(l.items, b.Clone())
	return nil
}

func (l *MemoryLedger) Get(ctx context.Context, id string) (model.Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return model.Booking{}, ErrBookingNotFound
	}
	return l.items[i].Clone(), nil
}

func (l *MemoryLedger) List(ctx context.Context) ([]model.Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Booking, 0, len(l.items))
	for _, b := range l.items {
		out = append(out, b.Clone())
	}
	return out, nil
}

func (l *MemoryLedger) ListByOwner(ctx context.Context, ownerID string) ([]model.Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []model.Booking{}
	for _, b := range l.items {
		if b.OwnerID == ownerID {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

func (l *MemoryLedger) Settle(ctx context.Context, id, status, verifiedBy string, at time.Time) (model.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[id]
	if !ok {
		return model.Booking{}, ErrBookingNotFound
	}
	b := &l.items[i]
	if b.Settled() {
		return b.Clone(), ErrBookingSettled
	}
	b.Status = status
	t := at.UTC()
	b.VerifiedAt = &t
	b.VerifiedBy = verifiedBy
	return b.Clone(), nil
}

func (l *MemoryLedger) TakenSeats(ctx context.Context, fixtureID string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []string
	for _, b := range l.items {
		if b.FixtureID == fixtureID && b.HoldsSeats() {
			out = append(out, b.SeatIDs...)
		}
	}
	return out, nil
}

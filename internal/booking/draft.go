package booking

import (
	"github.com/iliyamo/fixture-tickets/internal/model"
	"github.com/iliyamo/fixture-tickets/internal/seating"
)

// Draft is the in-progress selection of one session.  The zero value is
// the NoDraft state.
type Draft struct {
	fixture *model.Fixture
	seats   []string
}

// DraftView is a read-only snapshot of a draft.
type DraftView struct {
	Fixture    *model.Fixture `json:"fixture"`
	SeatIDs    []string       `json:"seats"`
	TotalPrice int64          `json:"total_price"`
}

// Active reports whether a fixture is bound.
func (d *Draft) Active() bool { return d.fixture != nil }

// Select binds f with an empty selection, discarding any previous draft.
func (d *Draft) Select(f model.Fixture) {
	d.fixture = &f
	d.seats = nil
}

// Toggle adds seatID when absent and removes it when present.
func (d *Draft) Toggle(seatID string) error {
	if d.fixture == nil {
		return ErrNoDraft
	}
	id := seating.NormalizeSeatID(seatID)
	for i, s := range d.seats {
		if s == id {
			d.seats = append(d.seats[:i], d.seats[i+1:]...)
			return nil
		}
	}
	if !seating.Exists(d.fixture.Capacity, id) {
		return ErrUnknownSeat
	}
	d.seats = append(d.seats, id)
	return nil
}

// Clear empties the selection and keeps the fixture bound.
func (d *Draft) Clear() error {
	if d.fixture == nil {
		return ErrNoDraft
	}
	d.seats = nil
	return nil
}

// Reset returns to NoDraft.
func (d *Draft) Reset() {
	d.fixture = nil
	d.seats = nil
}

// View copies the draft state.
func (d *Draft) View() DraftView {
	v := DraftView{SeatIDs: append([]string{}, d.seats...)}
	if d.fixture != nil {
		f := *d.fixture
		v.Fixture = &f
		v.TotalPrice = int64(len(d.seats)) * f.UnitPrice
	}
	return v
}

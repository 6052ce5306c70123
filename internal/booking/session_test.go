package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fixture-tickets/internal/catalog"
	"github.com/iliyamo/fixture-tickets/internal/model"
)

func TestSession_LoginLogout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	s := h.sessions.Open()

	_, ok := s.Identity()
	assert.False(t, ok)

	_, err := s.Login(ctx, "a@b.com", "123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, ok = s.Identity()
	assert.False(t, ok, "failed login changes nothing")

	who, err := s.Login(ctx, "a@b.com", "123456")
	require.NoError(t, err)
	got, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, who, got)

	_, err = s.SelectFixture(ctx, "1")
	require.NoError(t, err)
	_, err = s.ToggleSeat("A1")
	require.NoError(t, err)

	_, err = s.Login(ctx, "a@b.com", "654321")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, s.Draft().SeatIDs, "same identity keeps its draft")

	_, err = s.Login(ctx, "other@b.com", "654321")
	require.NoError(t, err)
	assert.Nil(t, s.Draft().Fixture, "new identity starts without a draft")

	s.Logout()
	s.Logout()
	_, ok = s.Identity()
	assert.False(t, ok)
	_, err = s.MyBookings(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSession_Register(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	s := h.sessions.Open()

	_, err := s.Register(ctx, "", "x@y.z", "123456")
	assert.ErrorIs(t, err, ErrInvalidRegistration)
	_, ok := s.Identity()
	assert.False(t, ok)

	who, err := s.Register(ctx, "Jane", "jane@y.z", "123456")
	require.NoError(t, err)
	assert.Equal(t, model.RolePatron, who.Role)
	assert.Equal(t, "Jane", who.DisplayName)
}

func TestSession_DraftEditing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	s := h.patron(t, "d@x.com")

	_, err := s.ToggleSeat("A1")
	assert.ErrorIs(t, err, ErrNoDraft)
	_, err = s.ClearSelection()
	assert.ErrorIs(t, err, ErrNoDraft)

	_, err = s.SelectFixture(ctx, "99")
	assert.ErrorIs(t, err, catalog.ErrFixtureNotFound)

	view, err := s.SelectFixture(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, view.SeatIDs)

	_, err = s.ToggleSeat("b4")
	require.NoError(t, err)
	view, err = s.ToggleSeat("B4")
	require.NoError(t, err)
	assert.Empty(t, view.SeatIDs, "toggling twice restores the selection")

	_, err = s.ToggleSeat("K1")
	assert.ErrorIs(t, err, ErrUnknownSeat)
	_, err = s.ToggleSeat("A19")
	assert.ErrorIs(t, err, ErrUnknownSeat, "fixture 2 has 18 seats per row")

	_, err = s.ToggleSeat("A3")
	require.NoError(t, err)
	_, err = s.ToggleSeat("A1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A3", "A1"}, s.Draft().SeatIDs)
	assert.EqualValues(t, 190, s.Draft().TotalPrice)

	view, err = s.ClearSelection()
	require.NoError(t, err)
	assert.Empty(t, view.SeatIDs)
	require.NotNil(t, view.Fixture)
	assert.Equal(t, "2", view.Fixture.ID)

	_, err = s.ToggleSeat("A1")
	require.NoError(t, err)
	view, err = s.SelectFixture(ctx, "3")
	require.NoError(t, err)
	assert.Empty(t, view.SeatIDs, "selecting a fixture discards the old draft")
}

func TestSessions_Registry(t *testing.T) {
	h := newHarness(t)
	a := h.sessions.Open()
	b := h.sessions.Open()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, h.sessions.Len())

	got, err := h.sessions.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = h.sessions.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	h.clock.Advance(20 * time.Minute)
	_, err = h.sessions.Get(a.ID())
	require.NoError(t, err)
	h.clock.Advance(15 * time.Minute)
	assert.Equal(t, 1, h.sessions.Sweep(), "only the untouched session expires")
	_, err = h.sessions.Get(b.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	h.sessions.Close(a.ID())
	assert.Zero(t, h.sessions.Len())
}

func TestSessions_ConcurrentSubmits(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	const patrons = 16
	var wg sync.WaitGroup
	errs := make([]error, patrons)
	for i := 0; i < patrons; i++ {
		s := h.patron(t, fmt.Sprintf("p%d@x.com", i))
		_, err := s.SelectFixture(ctx, "1")
		require.NoError(t, err)
		_, err = s.ToggleSeat("E5")
		require.NoError(t, err)
		wg.Add(1)
		go func(i int, s *Session) {
			defer wg.Done()
			_, errs[i] = s.Submit(ctx, fmt.Sprintf("TXN%d", i))
		}(i, s)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrSeatTaken)
	}
	assert.Equal(t, 1, ok, "exactly one patron gets the seat")

	all, err := h.engine.AllBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/model"
)

// BookingRepo is the MySQL booking ledger.  Bookings live in the bookings
// table in insertion order (seq); their seats live in booking_seats.
type BookingRepo struct {
	db *sql.DB
}

var _ booking.Ledger = (*BookingRepo)(nil)

func NewBookingRepo(db *sql.DB) *BookingRepo {
	if db == nil {
		panic("nil db passed to NewBookingRepo")
	}
	return &BookingRepo{db: db}
}

const bookingColumns = `id, fixture_id, total_price, payment_reference, status,
       owner_id, owner_name, owner_email, created_at, verified_at, verified_by`

// Append inserts b and its seats in one transaction.  Appends for the same
// fixture are serialized on the fixture_locks row so the seat conflict
// check and the insert see a consistent ledger.
func (r *BookingRepo) Append(ctx context.Context, b model.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO fixture_locks (fixture_id) VALUES (?) ON DUPLICATE KEY UPDATE fixture_id = fixture_id`,
		b.FixtureID); err != nil {
		return fmt.Errorf("lock fixture %s: %w", b.FixtureID, err)
	}

	if len(b.SeatIDs) > 0 {
		taken, err := heldSeatsTx(ctx, tx, b.FixtureID, b.SeatIDs)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return fmt.Errorf("%w: %s", booking.ErrSeatTaken, strings.Join(taken, ","))
		}
	}

	var verifiedAt sql.NullTime
	if b.VerifiedAt != nil {
		verifiedAt = sql.NullTime{Time: b.VerifiedAt.UTC(), Valid: true}
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.FixtureID, b.TotalPrice, b.PaymentReference, b.Status,
		b.OwnerID, b.OwnerName, b.OwnerEmail, b.CreatedAt.UTC(), verifiedAt, nullString(b.VerifiedBy))
	if err != nil {
		if isDuplicate(err) {
			return booking.ErrDuplicateBooking
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	if len(b.SeatIDs) > 0 {
		query := `INSERT INTO booking_seats (booking_id, fixture_id, seat_id, position) VALUES `
		args := make([]interface{}, 0, len(b.SeatIDs)*4)
		for i, s := range b.SeatIDs {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?)"
			args = append(args, b.ID, b.FixtureID, s, i)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert booking seats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isMySQLError(err, errDeadlock) {
			return booking.ErrSeatTaken
		}
		return fmt.Errorf("commit append: %w", err)
	}
	committed = true
	return nil
}

// heldSeatsTx returns which of seatIDs are held by pending or approved
// bookings of the fixture.
func heldSeatsTx(ctx context.Context, tx *sql.Tx, fixtureID string, seatIDs []string) ([]string, error) {
	args := make([]interface{}, 0, len(seatIDs)+1)
	args = append(args, fixtureID)
	for _, s := range seatIDs {
		args = append(args, s)
	}
	q := `SELECT bs.seat_id
          FROM booking_seats bs
          JOIN bookings b ON b.id = bs.booking_id
         WHERE bs.fixture_id = ?
           AND b.status IN ('pending','approved')
           AND bs.seat_id IN (` + placeholders(len(seatIDs)) + `)`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("check held seats: %w", err)
	}
	defer rows.Close()
	var taken []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		taken = append(taken, s)
	}
	return taken, rows.Err()
}

func (r *BookingRepo) Get(ctx context.Context, id string) (model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := r.query(ctx, `WHERE id = ?`, id)
	if err != nil {
		return model.Booking{}, err
	}
	if len(out) == 0 {
		return model.Booking{}, booking.ErrBookingNotFound
	}
	return out[0], nil
}

func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.query(ctx, ``)
}

func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.query(ctx, `WHERE owner_id = ?`, ownerID)
}

// Settle is a compare-and-set on status = 'pending'.
func (r *BookingRepo) Settle(ctx context.Context, id, status, verifiedBy string, at time.Time) (model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, verified_at = ?, verified_by = ? WHERE id = ? AND status = 'pending'`,
		status, at.UTC(), verifiedBy, id)
	if err != nil {
		return model.Booking{}, fmt.Errorf("settle booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Booking{}, err
	}
	b, err := r.Get(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if n == 0 {
		return b, booking.ErrBookingSettled
	}
	return b, nil
}

func (r *BookingRepo) TakenSeats(ctx context.Context, fixtureID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT bs.seat_id
           FROM booking_seats bs
           JOIN bookings b ON b.id = bs.booking_id
          WHERE bs.fixture_id = ? AND b.status IN ('pending','approved')
          ORDER BY b.seq, bs.position`, fixtureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// query loads bookings matching where (in seq order) and attaches their
// seats.
func (r *BookingRepo) query(ctx context.Context, where string, args ...interface{}) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	index := map[string]int{}
	for rows.Next() {
		var (
			b          model.Booking
			verifiedAt sql.NullTime
			verifiedBy sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.FixtureID, &b.TotalPrice, &b.PaymentReference, &b.Status,
			&b.OwnerID, &b.OwnerName, &b.OwnerEmail, &b.CreatedAt, &verifiedAt, &verifiedBy); err != nil {
			return nil, err
		}
		b.CreatedAt = b.CreatedAt.UTC()
		if verifiedAt.Valid {
			t := verifiedAt.Time.UTC()
			b.VerifiedAt = &t
		}
		b.VerifiedBy = verifiedBy.String
		b.SeatIDs = []string{}
		index[b.ID] = len(out)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]interface{}, 0, len(out))
	for _, b := range out {
		ids = append(ids, b.ID)
	}
	seatRows, err := r.db.QueryContext(ctx,
		`SELECT booking_id, seat_id FROM booking_seats WHERE booking_id IN (`+placeholders(len(ids))+`) ORDER BY booking_id, position`,
		ids...)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()
	for seatRows.Next() {
		var bookingID, seatID string
		if err := seatRows.Scan(&bookingID, &seatID); err != nil {
			return nil, err
		}
		if i, ok := index[bookingID]; ok {
			out[i].SeatIDs = append(out[i].SeatIDs, seatID)
		}
	}
	return out, seatRows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Package seating derives the seat map shown for a fixture.  The map is
// cosmetic: availability is re-sampled on every call and only the number
// of unavailable seats is meaningful.
package seating

import (
    "errors"
    "math/rand/v2"
    "strconv"
    "strings"

    "github.com/iliyamo/fixture-tickets/internal/model"
)

// Rows are the fixed row labels, filled in order.
var Rows = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

var (
    ErrInvalidSeatCount        = errors.New("total seats must be positive")
    ErrInvalidUnavailableCount = errors.New("unavailable count out of range")
)

// SeatsPerRow returns ceil(total / len(Rows)).
func SeatsPerRow(total int) int {
    if total <= 0 {
        return 0
    }
    return (total + len(Rows) - 1) / len(Rows)
}

// Generate lays out total seats across rows A..J and marks unavailable of
// them, chosen uniformly at random by generation position, as sold.  A nil
// rng falls back to the global source.
func Generate(total, unavailable int, rng *rand.Rand) ([]model.Seat, error) {
    if total <= 0 {
        return nil, ErrInvalidSeatCount
    }
    if unavailable < 0 || unavailable > total {
        return nil, ErrInvalidUnavailableCount
    }

    taken := pickPositions(total, unavailable, rng)
    perRow := SeatsPerRow(total)
    seats := make([]model.Seat, 0, total)
    for _, row := range Rows {
        for n := 1; n <= perRow && len(seats) < total; n++ {
            pos := len(seats)
            _, sold := taken[pos]
            seats = append(seats, model.Seat{
                ID:        row + strconv.Itoa(n),
                Row:       row,
                Number:    n,
                Available: !sold,
            })
        }
    }
    return seats, nil
}

// ForFixture generates the seat map for a catalog fixture.
func ForFixture(f model.Fixture, rng *rand.Rand) ([]model.Seat, error) {
    return Generate(f.Capacity, f.UnavailableCount(), rng)
}

// pickPositions draws k distinct positions in [0,n) with a partial
// Fisher-Yates shuffle.
func pickPositions(n, k int, rng *rand.Rand) map[int]struct{} {
    out := make(map[int]struct{}, k)
    if k == 0 {
        return out
    }
    idx := make([]int, n)
    for i := range idx {
        idx[i] = i
    }
    for i := 0; i < k; i++ {
        j := i + intN(rng, n-i)
        idx[i], idx[j] = idx[j], idx[i]
        out[idx[i]] = struct{}{}
    }
    return out
}

func intN(rng *rand.Rand, n int) int {
    if rng == nil {
        return rand.IntN(n)
    }
    return rng.IntN(n)
}

// Exists reports whether seatID names a seat in the layout generated for a
// fixture with the given capacity.
func Exists(total int, seatID string) bool {
    row, num, ok := ParseSeatID(seatID)
    if !ok || total <= 0 {
        return false
    }
    ri := -1
    for i, r := range Rows {
        if r == row {
            ri = i
            break
        }
    }
    if ri < 0 {
        return false
    }
    perRow := SeatsPerRow(total)
    if num < 1 || num > perRow {
        return false
    }
    return ri*perRow+num-1 < total
}

// ParseSeatID splits "C12" into ("C", 12).  Lower-case rows are accepted.
func ParseSeatID(seatID string) (string, int, bool) {
    s := strings.ToUpper(strings.TrimSpace(seatID))
    if len(s) < 2 {
        return "", 0, false
    }
    row := s[:1]
    if row[0] < 'A' || row[0] > 'Z' {
        return "", 0, false
    }
    num, err := strconv.Atoi(s[1:])
    if err != nil || num < 1 {
        return "", 0, false
    }
    return row, num, true
}

// NormalizeSeatID returns the canonical form of a seat id ("c07" -> "C7").
func NormalizeSeatID(seatID string) string {
    row, num, ok := ParseSeatID(seatID)
    if !ok {
        return strings.TrimSpace(seatID)
    }
    return row + strconv.Itoa(num)
}

// MarkTaken flips the listed seats to unavailable in place.  It is used to
// overlay seats already claimed by bookings onto a generated map.
func MarkTaken(seats []model.Seat, taken []string) {
    if len(taken) == 0 {
        return
    }
    set := make(map[string]struct{}, len(taken))
    for _, id := range taken {
        set[id] = struct{}{}
    }
    for i := range seats {
        if _, ok := set[seats[i].ID]; ok {
            seats[i].Available = false
        }
    }
}

package model

// Seat describes one position in a fixture's generated seat map.  Seats
// are derived on every request and never stored; only the identifiers a
// patron selects end up on a booking.
//
// Fields:
//  ID        – row label followed by seat number (e.g. "C12").
//  Row       – row label A..J.
//  Number    – 1-based seat number within the row.
//  Available – false when the seat is shown as sold.
type Seat struct {
    ID        string `json:"id"`
    Row       string `json:"row"`
    Number    int    `json:"number"`
    Available bool   `json:"available"`
}

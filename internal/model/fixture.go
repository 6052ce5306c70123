package model

// Fixture is a scheduled match offered by the catalog.  Fixtures are
// immutable for the booking core; only the catalog owns them.
//
// Fields:
//  ID             – catalog identifier.
//  HomeTeam       – name of the home side.
//  AwayTeam       – name of the visiting side.
//  Date           – match day as YYYY-MM-DD.
//  Time           – kick-off as HH:MM local to the venue.
//  Venue          – stadium name.
//  UnitPrice      – price of one seat in whole currency units.
//  Capacity       – number of seats in the bookable section.
//  SeatsRemaining – seats the catalog reports as still on sale.
//  ImageURL       – optional artwork for listings.
type Fixture struct {
    ID             string `json:"id"`
    HomeTeam       string `json:"home_team"`
    AwayTeam       string `json:"away_team"`
    Date           string `json:"date"`
    Time           string `json:"time"`
    Venue          string `json:"venue"`
    UnitPrice      int64  `json:"unit_price"`
    Capacity       int    `json:"capacity"`
    SeatsRemaining int    `json:"seats_remaining"`
    ImageURL       string `json:"image_url,omitempty"`
}

// UnavailableCount is the number of seats the catalog considers sold.
// Values outside [0, Capacity] are clamped.
func (f Fixture) UnavailableCount() int {
    n := f.Capacity - f.SeatsRemaining
    if n < 0 {
        return 0
    }
    if n > f.Capacity {
        return f.Capacity
    }
    return n
}

// Title renders "Home vs Away".
func (f Fixture) Title() string { return f.HomeTeam + " vs " + f.AwayTeam }

package booking

import (
	"errors"

	"github.com/iliyamo/fixture-tickets/internal/identity"
)

// Validation failures: the caller supplied something unusable.  Always
// recoverable and never change state.
var (
	ErrInvalidCredentials       = identity.ErrInvalidCredentials
	ErrInvalidRegistration      = identity.ErrInvalidRegistration
	ErrEmailExists              = identity.ErrEmailExists
	ErrNotAuthenticated         = errors.New("not authenticated")
	ErrNoSeatsSelected          = errors.New("no seats selected")
	ErrPaymentReferenceRequired = errors.New("payment reference required")
	ErrUnknownSeat              = errors.New("seat is not part of this fixture")
)

// Precondition violations: the operation is valid in general but not in
// the current state.
var (
	ErrNoDraft            = errors.New("no fixture selected")
	ErrNotPatron          = errors.New("only patrons can submit bookings")
	ErrNotAdmin           = errors.New("admin role required")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingSettled     = errors.New("booking already verified")
	ErrSeatTaken          = errors.New("seat already booked")
	ErrTicketNotAvailable = errors.New("ticket not available until payment is approved")
	ErrSessionNotFound    = errors.New("session not found")
)

// ErrDuplicateBooking is returned by a Ledger when a booking id is reused.
var ErrDuplicateBooking = errors.New("duplicate booking id")

var validation = []error{
	ErrInvalidCredentials,
	ErrInvalidRegistration,
	ErrEmailExists,
	ErrNotAuthenticated,
	ErrNoSeatsSelected,
	ErrPaymentReferenceRequired,
	ErrUnknownSeat,
}

var precondition = []error{
	ErrNoDraft,
	ErrNotPatron,
	ErrNotAdmin,
	ErrBookingNotFound,
	ErrBookingSettled,
	ErrSeatTaken,
	ErrTicketNotAvailable,
	ErrSessionNotFound,
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return matchesAny(err, validation) }

// IsPrecondition reports whether err is a precondition violation.
func IsPrecondition(err error) bool { return matchesAny(err, precondition) }

func matchesAny(err error, set []error) bool {
	if err == nil {
		return false
	}
	for _, e := range set {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

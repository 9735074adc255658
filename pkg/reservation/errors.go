package reservation

import "errors"

var (
	// ErrSlotTaken means an active reservation or block already holds the
	// requested (date, shift). Returned both by the application-level check
	// and by the storage constraint, so callers see one error regardless of
	// which layer detected the race.
	ErrSlotTaken = errors.New("shift is already booked for this date")

	// ErrValidation wraps every malformed-request failure.
	ErrValidation = errors.New("invalid reservation request")

	ErrNotFound = errors.New("reservation not found")

	ErrInvalidTransition = errors.New("status transition not allowed")
)

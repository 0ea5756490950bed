package services

import (
	"errors"
	"fmt"
)

// Allocation and scheduling failures the caller is expected to handle. None
// of these are retried internally; retry policy belongs to the caller.
var (
	ErrAlreadyAssigned   = errors.New("tenant already holds a phone number")
	ErrNumberUnavailable = errors.New("phone number is not available")
	ErrPoolExhausted     = errors.New("no available phone numbers in the pool")
	ErrInvalidDuration   = errors.New("duration must be greater than zero")
	ErrInvalidTimeWindow = errors.New("period end must be after period start")
)

// ConflictError reports every assignment overlapping the requested slot, not
// just the first, so callers can present all of them for a manual decision.
type ConflictError struct {
	ConflictingIDs []uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict with %d existing assignment(s)", len(e.ConflictingIDs))
}

// AsConflict unwraps err into a *ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

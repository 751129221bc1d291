package booking

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("booking not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrConflict          = errors.New("room is not available for the requested dates")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ConflictError carries the bookings that block the requested interval so the
// operator can resolve the clash.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v (%d conflicting booking(s))", ErrConflict, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrCategoryNotFound  = errors.New("service category not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrBookingNotFound   = errors.New("service booking not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrConflict          = errors.New("time slot is already taken")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrIntegrity         = errors.New("record still has dependents")
)

// ConflictError carries the service bookings that block the requested slot.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v (%d conflicting booking(s))", ErrConflict, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

package customers

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("customer not found")
	ErrIntegrity  = errors.New("customer has active bookings")
)

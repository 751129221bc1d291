package rooms

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrDuplicateNumber  = errors.New("room number already exists")
	ErrIntegrity        = errors.New("record still has dependents")
)

package domain

import (
	"time"

	"gorm.io/datatypes"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

type RoomType struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description,omitempty"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gte=0"`
	Capacity      int     `json:"capacity" validate:"required,gte=1,lte=8"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Room.Status is a cached occupancy flag kept in sync by the booking
// lifecycle; overlap queries against bookings remain the source of truth.
type Room struct {
	ID         int64          `json:"id"`
	RoomNumber string         `json:"room_number" validate:"required"`
	RoomTypeID int64          `json:"room_type_id" validate:"required"`
	Status     RoomStatus     `json:"status"`
	Floor      int            `json:"floor" validate:"required,gte=1,lte=10"`
	Amenities  datatypes.JSON `json:"amenities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RoomType *RoomType `json:"room_type,omitempty"`
}

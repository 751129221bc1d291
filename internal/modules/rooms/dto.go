package rooms

import (
	"hoteldesk/internal/domain"
)

type RoomTypeRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"price_per_night" binding:"gte=0"`
	Capacity      int     `json:"capacity" binding:"required"`
}

type RoomRequest struct {
	RoomNumber string            `json:"room_number" binding:"required"`
	RoomTypeID int64             `json:"room_type_id" binding:"required"`
	Status     domain.RoomStatus `json:"status"`
	Floor      int               `json:"floor" binding:"required"`
	Amenities  []string          `json:"amenities"`
}

// RoomListQuery narrows the room listing.
type RoomListQuery struct {
	RoomTypeID int64
	Floor      int
	Status     domain.RoomStatus
	Search     string
	Limit      int
	Offset     int
}

type DashboardStats struct {
	TotalRooms     int64                       `json:"total_rooms"`
	TotalRoomTypes int64                       `json:"total_room_types"`
	StatusCounts   map[domain.RoomStatus]int64 `json:"status_counts"`
	OccupancyRate  float64                     `json:"occupancy_rate"`
}

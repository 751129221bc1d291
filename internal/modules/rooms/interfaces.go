package rooms

import (
	"context"

	"hoteldesk/internal/domain"
)

// Store is the persistence surface of the rooms module. InTx runs fn against
// a transaction-scoped Store so that reassign-then-delete lands atomically.
type Store interface {
	InTx(ctx context.Context, fn func(tx Store) error) error

	CreateRoomType(ctx context.Context, rt *domain.RoomType) error
	GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error)
	UpdateRoomType(ctx context.Context, rt *domain.RoomType) error
	DeleteRoomType(ctx context.Context, id int64) error
	ListRoomTypes(ctx context.Context) ([]domain.RoomType, error)
	CountRoomTypes(ctx context.Context) (int64, error)
	CountRoomsOfType(ctx context.Context, roomTypeID int64) (int64, error)
	// ReassignRooms moves every room of fromTypeID to toTypeID and returns
	// the number of rooms moved.
	ReassignRooms(ctx context.Context, fromTypeID, toTypeID int64) (int64, error)

	CreateRoom(ctx context.Context, r *domain.Room) error
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	UpdateRoom(ctx context.Context, r *domain.Room) error
	DeleteRoom(ctx context.Context, id int64) error
	ListRooms(ctx context.Context, q RoomListQuery) ([]domain.Room, error)
	CountRooms(ctx context.Context) (int64, error)
	RoomStatusCounts(ctx context.Context) (map[domain.RoomStatus]int64, error)
	CountActiveBookingsForRoom(ctx context.Context, roomID int64) (int64, error)
}

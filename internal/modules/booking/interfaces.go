package booking

import (
	"context"
	"time"

	"hoteldesk/internal/domain"
)

// Store is the persistence surface of the reservation core. InTx runs fn
// against a store bound to one transaction; every lifecycle mutation (overlap
// check, booking write, room flag update) happens inside a single InTx call
// so partial application is never observable.
type Store interface {
	InTx(ctx context.Context, fn func(tx Store) error) error

	CreateBooking(ctx context.Context, b *domain.Booking) error
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, b *domain.Booking) error
	DeleteBooking(ctx context.Context, id int64) error
	ListBookings(ctx context.Context, q ListQuery) ([]domain.Booking, error)
	CountBookings(ctx context.Context, q ListQuery) (int64, error)
	StatusCounts(ctx context.Context) (map[domain.BookingStatus]int64, error)

	// OccupiedRoomIDs returns rooms referenced by an active-status booking
	// overlapping [checkIn, checkOut).
	OccupiedRoomIDs(ctx context.Context, checkIn, checkOut time.Time, excludeBookingID int64) ([]int64, error)
	OverlappingBookings(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error)
	BookingsInRange(ctx context.Context, from, to time.Time, roomIDs []int64) ([]domain.Booking, error)
	CountCheckedInForRoom(ctx context.Context, roomID, excludeBookingID int64) (int64, error)
	CheckedInCountsByRoom(ctx context.Context) (map[int64]int64, error)

	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	// LockRoom fetches the room with a row lock when called inside InTx,
	// serializing concurrent writers on the contended room.
	LockRoom(ctx context.Context, id int64) (*domain.Room, error)
	SetRoomStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error
	AvailableRooms(ctx context.Context, f RoomFilter, excludeRoomIDs []int64) ([]domain.Room, error)
	ListRooms(ctx context.Context, f RoomGridFilter) ([]domain.Room, error)

	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, c *domain.Customer) error

	ListPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

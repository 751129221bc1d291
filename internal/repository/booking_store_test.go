package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hoteldesk/internal/database"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/modules/booking"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(AllModels()...))
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, number string, typeID int64, status domain.RoomStatus) int64 {
	t.Helper()
	m := roomModel{RoomNumber: number, RoomTypeID: typeID, Status: string(status), Floor: 1}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

func TestAvailableRooms_OnlyAvailableFlagReturned(t *testing.T) {
	db := openTestDB(t)
	rt := roomTypeModel{Name: "Standard", PricePerNight: 2500, Capacity: 2}
	require.NoError(t, db.Create(&rt).Error)

	seedRoom(t, db, "101", rt.ID, domain.RoomAvailable)
	// flagged occupied with no booking at all: still not bookable
	seedRoom(t, db, "102", rt.ID, domain.RoomOccupied)
	seedRoom(t, db, "103", rt.ID, domain.RoomMaintenance)

	store := NewBookingStore(db)
	rooms, err := store.AvailableRooms(context.Background(), booking.RoomFilter{}, nil)

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "101", rooms[0].RoomNumber)
}

func TestAvailableRooms_ExcludesListedRooms(t *testing.T) {
	db := openTestDB(t)
	rt := roomTypeModel{Name: "Standard", PricePerNight: 2500, Capacity: 2}
	require.NoError(t, db.Create(&rt).Error)

	id101 := seedRoom(t, db, "101", rt.ID, domain.RoomAvailable)
	seedRoom(t, db, "102", rt.ID, domain.RoomAvailable)

	store := NewBookingStore(db)
	rooms, err := store.AvailableRooms(context.Background(), booking.RoomFilter{}, []int64{id101})

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "102", rooms[0].RoomNumber)
}

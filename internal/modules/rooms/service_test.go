package rooms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type mockStore struct {
	mock.Mock
}

// InTx just runs fn against the same mock; transactional behavior is the
// real store's concern.
func (m *mockStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return fn(m)
}

func (m *mockStore) CreateRoomType(ctx context.Context, rt *domain.RoomType) error {
	args := m.Called(ctx, rt)
	if rt != nil && rt.ID == 0 {
		rt.ID = 1
	}
	return args.Error(0)
}

func (m *mockStore) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomType), args.Error(1)
}

func (m *mockStore) UpdateRoomType(ctx context.Context, rt *domain.RoomType) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *mockStore) DeleteRoomType(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RoomType), args.Error(1)
}

func (m *mockStore) CountRoomTypes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CountRoomsOfType(ctx context.Context, roomTypeID int64) (int64, error) {
	args := m.Called(ctx, roomTypeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) ReassignRooms(ctx context.Context, fromTypeID, toTypeID int64) (int64, error) {
	args := m.Called(ctx, fromTypeID, toTypeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CreateRoom(ctx context.Context, r *domain.Room) error {
	args := m.Called(ctx, r)
	if r != nil && r.ID == 0 {
		r.ID = 1
	}
	return args.Error(0)
}

func (m *mockStore) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockStore) UpdateRoom(ctx context.Context, r *domain.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockStore) DeleteRoom(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) ListRooms(ctx context.Context, q RoomListQuery) ([]domain.Room, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockStore) CountRooms(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) RoomStatusCounts(ctx context.Context) (map[domain.RoomStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.RoomStatus]int64), args.Error(1)
}

func (m *mockStore) CountActiveBookingsForRoom(ctx context.Context, roomID int64) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func standardType() *domain.RoomType {
	return &domain.RoomType{ID: 1, Name: "Standard", PricePerNight: 2500, Capacity: 2}
}

func TestCreateRoomType_RejectsCapacityOutOfRange(t *testing.T) {
	service := NewService(new(mockStore))

	_, err := service.CreateRoomType(context.Background(), RoomTypeRequest{
		Name:          "Dormitory",
		PricePerNight: 1000,
		Capacity:      9,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.CreateRoomType(context.Background(), RoomTypeRequest{
		Name:          "Closet",
		PricePerNight: 1000,
		Capacity:      0,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteRoomType_ReassignsRoomsFirst(t *testing.T) {
	store := new(mockStore)
	store.On("GetRoomType", mock.Anything, int64(1)).Return(standardType(), nil)
	store.On("GetRoomType", mock.Anything, int64(2)).
		Return(&domain.RoomType{ID: 2, Name: "Deluxe", PricePerNight: 4500, Capacity: 3}, nil)
	store.On("ReassignRooms", mock.Anything, int64(1), int64(2)).Return(int64(3), nil)
	store.On("DeleteRoomType", mock.Anything, int64(1)).Return(nil)

	service := NewService(store)
	err := service.DeleteRoomType(context.Background(), 1, 2)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestDeleteRoomType_RejectsSelfReassignment(t *testing.T) {
	store := new(mockStore)
	store.On("GetRoomType", mock.Anything, int64(1)).Return(standardType(), nil)

	service := NewService(store)
	err := service.DeleteRoomType(context.Background(), 1, 1)

	assert.ErrorIs(t, err, ErrValidation)
	store.AssertNotCalled(t, "DeleteRoomType", mock.Anything, mock.Anything)
}

func TestDeleteRoomType_GuardedWithoutReassignment(t *testing.T) {
	store := new(mockStore)
	store.On("GetRoomType", mock.Anything, int64(1)).Return(standardType(), nil)
	store.On("CountRoomsOfType", mock.Anything, int64(1)).Return(int64(2), nil)

	service := NewService(store)
	err := service.DeleteRoomType(context.Background(), 1, 0)

	assert.ErrorIs(t, err, ErrIntegrity)
	store.AssertNotCalled(t, "DeleteRoomType", mock.Anything, mock.Anything)
}

func TestDeleteRoomType_EmptyTypeDeleted(t *testing.T) {
	store := new(mockStore)
	store.On("GetRoomType", mock.Anything, int64(1)).Return(standardType(), nil)
	store.On("CountRoomsOfType", mock.Anything, int64(1)).Return(int64(0), nil)
	store.On("DeleteRoomType", mock.Anything, int64(1)).Return(nil)

	service := NewService(store)
	err := service.DeleteRoomType(context.Background(), 1, 0)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCreateRoom_RejectsFloorOutOfRange(t *testing.T) {
	service := NewService(new(mockStore))

	_, err := service.CreateRoom(context.Background(), RoomRequest{
		RoomNumber: "1101",
		RoomTypeID: 1,
		Floor:      11,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRoom_UnknownRoomType(t *testing.T) {
	store := new(mockStore)
	store.On("GetRoomType", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(store)
	_, err := service.CreateRoom(context.Background(), RoomRequest{
		RoomNumber: "101",
		RoomTypeID: 9,
		Floor:      1,
	})

	assert.ErrorIs(t, err, ErrRoomTypeNotFound)
}

func TestCreateRoom_DefaultsToAvailable(t *testing.T) {
	store := new(mockStore)
	store.On("GetRoomType", mock.Anything, int64(1)).Return(standardType(), nil)
	store.On("CreateRoom", mock.Anything, mock.Anything).Return(nil)

	service := NewService(store)
	r, err := service.CreateRoom(context.Background(), RoomRequest{
		RoomNumber: "101",
		RoomTypeID: 1,
		Floor:      1,
		Amenities:  []string{"wifi"},
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, r.Status)
	assert.JSONEq(t, `["wifi"]`, string(r.Amenities))
}

func TestDeleteRoom_GuardedByActiveBookings(t *testing.T) {
	store := new(mockStore)
	store.On("GetRoom", mock.Anything, int64(1)).
		Return(&domain.Room{ID: 1, RoomNumber: "101", Status: domain.RoomAvailable}, nil)
	store.On("CountActiveBookingsForRoom", mock.Anything, int64(1)).Return(int64(1), nil)

	service := NewService(store)
	err := service.DeleteRoom(context.Background(), 1)

	assert.ErrorIs(t, err, ErrIntegrity)
	store.AssertNotCalled(t, "DeleteRoom", mock.Anything, mock.Anything)
}

func TestDashboard_OccupancyRate(t *testing.T) {
	store := new(mockStore)
	store.On("CountRooms", mock.Anything).Return(int64(4), nil)
	store.On("CountRoomTypes", mock.Anything).Return(int64(2), nil)
	store.On("RoomStatusCounts", mock.Anything).Return(map[domain.RoomStatus]int64{
		domain.RoomAvailable:   2,
		domain.RoomOccupied:    1,
		domain.RoomMaintenance: 1,
	}, nil)

	service := NewService(store)
	stats, err := service.Dashboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalRooms)
	assert.Equal(t, 0.25, stats.OccupancyRate)
}

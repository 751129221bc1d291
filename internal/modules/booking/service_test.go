package booking

import (
	"context"
	"testing"
	"time"

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

func (m *mockStore) CreateBooking(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && b.ID == 0 {
		b.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *mockStore) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockStore) UpdateBooking(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockStore) DeleteBooking(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) ListBookings(ctx context.Context, q ListQuery) ([]domain.Booking, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockStore) CountBookings(ctx context.Context, q ListQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) StatusCounts(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.BookingStatus]int64), args.Error(1)
}

func (m *mockStore) OccupiedRoomIDs(ctx context.Context, checkIn, checkOut time.Time, excludeBookingID int64) ([]int64, error) {
	args := m.Called(ctx, checkIn, checkOut, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockStore) OverlappingBookings(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockStore) BookingsInRange(ctx context.Context, from, to time.Time, roomIDs []int64) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to, roomIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockStore) CountCheckedInForRoom(ctx context.Context, roomID, excludeBookingID int64) (int64, error) {
	args := m.Called(ctx, roomID, excludeBookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CheckedInCountsByRoom(ctx context.Context) (map[int64]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *mockStore) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockStore) LockRoom(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockStore) SetRoomStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

func (m *mockStore) AvailableRooms(ctx context.Context, f RoomFilter, excludeRoomIDs []int64) ([]domain.Room, error) {
	args := m.Called(ctx, f, excludeRoomIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockStore) ListRooms(ctx context.Context, f RoomGridFilter) ([]domain.Room, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockStore) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockStore) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	if c != nil && c.ID == 0 {
		c.ID = 55
	}
	return args.Error(0)
}

func (m *mockStore) ListPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func standardRoom() *domain.Room {
	return &domain.Room{
		ID:         1,
		RoomNumber: "101",
		RoomTypeID: 1,
		Status:     domain.RoomAvailable,
		Floor:      1,
		RoomType: &domain.RoomType{
			ID:            1,
			Name:          "Standard",
			PricePerNight: 2500,
			Capacity:      2,
		},
	}
}

func TestFindAvailableRooms_ExcludesOverlappingRooms(t *testing.T) {
	store := new(mockStore)
	checkIn := day(2027, 3, 10)
	checkOut := day(2027, 3, 12)

	store.On("OccupiedRoomIDs", mock.Anything, checkIn, checkOut, int64(0)).
		Return([]int64{2}, nil)
	store.On("AvailableRooms", mock.Anything, RoomFilter{}, []int64{2}).
		Return([]domain.Room{*standardRoom()}, nil)

	service := NewService(store)
	rooms, err := service.FindAvailableRooms(context.Background(), checkIn, checkOut, RoomFilter{})

	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, "101", rooms[0].RoomNumber)
	store.AssertExpectations(t)
}

func TestFindAvailableRooms_RejectsEmptyRange(t *testing.T) {
	service := NewService(new(mockStore))

	_, err := service.FindAvailableRooms(context.Background(), day(2027, 3, 10), day(2027, 3, 10), RoomFilter{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.FindAvailableRooms(context.Background(), day(2027, 3, 12), day(2027, 3, 10), RoomFilter{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_Success(t *testing.T) {
	store := new(mockStore)
	checkIn := day(2027, 3, 10)
	checkOut := day(2027, 3, 12)

	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)
	store.On("GetCustomer", mock.Anything, int64(7)).Return(&domain.Customer{ID: 7}, nil)
	store.On("OverlappingBookings", mock.Anything, int64(1), checkIn, checkOut, int64(0)).
		Return([]domain.Booking{}, nil)
	store.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)

	service := NewService(store)
	b, err := service.CreateBooking(context.Background(), CreateBookingInput{
		Customer: CustomerRef{ExistingID: 7},
		RoomID:   1,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, domain.BookingAwaitingPayment, b.Status)
	assert.Equal(t, 5000.0, b.TotalPrice) // 2 nights x 2500
	store.AssertExpectations(t)
}

func TestCreateBooking_Conflict(t *testing.T) {
	store := new(mockStore)
	checkIn := day(2027, 3, 10)
	checkOut := day(2027, 3, 12)

	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)
	store.On("GetCustomer", mock.Anything, int64(7)).Return(&domain.Customer{ID: 7}, nil)
	store.On("OverlappingBookings", mock.Anything, int64(1), checkIn, checkOut, int64(0)).
		Return([]domain.Booking{{
			ID:           33,
			Status:       domain.BookingConfirmed,
			CheckInDate:  day(2027, 3, 11),
			CheckOutDate: day(2027, 3, 13),
			Customer:     &domain.Customer{FirstName: "Aidana", LastName: "Serikova"},
		}}, nil)

	service := NewService(store)
	_, err := service.CreateBooking(context.Background(), CreateBookingInput{
		Customer: CustomerRef{ExistingID: 7},
		RoomID:   1,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})

	assert.ErrorIs(t, err, ErrConflict)
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
	assert.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(33), conflictErr.Conflicts[0].BookingID)
	assert.Equal(t, "Aidana Serikova", conflictErr.Conflicts[0].CustomerName)
	store.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBooking_MaintenanceRoomRejected(t *testing.T) {
	store := new(mockStore)
	room := standardRoom()
	room.Status = domain.RoomMaintenance
	store.On("LockRoom", mock.Anything, int64(1)).Return(room, nil)

	service := NewService(store)
	_, err := service.CreateBooking(context.Background(), CreateBookingInput{
		Customer: CustomerRef{ExistingID: 7},
		RoomID:   1,
		CheckIn:  day(2027, 3, 10),
		CheckOut: day(2027, 3, 12),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_RoomNotFound(t *testing.T) {
	store := new(mockStore)
	store.On("LockRoom", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(store)
	_, err := service.CreateBooking(context.Background(), CreateBookingInput{
		Customer: CustomerRef{ExistingID: 7},
		RoomID:   9,
		CheckIn:  day(2027, 3, 10),
		CheckOut: day(2027, 3, 12),
	})

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateBooking_UnderageCustomerRejected(t *testing.T) {
	store := new(mockStore)
	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)

	service := NewService(store)
	_, err := service.CreateBooking(context.Background(), CreateBookingInput{
		Customer: CustomerRef{New: &domain.Customer{
			FirstName: "Too",
			LastName:  "Young",
			Email:     "young@example.com",
			Phone:     "+7 701 111 2233",
			Birthday:  time.Now().AddDate(-17, 0, 0),
		}},
		RoomID:   1,
		CheckIn:  day(2027, 3, 10),
		CheckOut: day(2027, 3, 12),
	})

	assert.ErrorIs(t, err, ErrValidation)
	store.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}

func TestCreateBooking_MissingCustomerRef(t *testing.T) {
	store := new(mockStore)
	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)

	service := NewService(store)
	_, err := service.CreateBooking(context.Background(), CreateBookingInput{
		RoomID:   1,
		CheckIn:  day(2027, 3, 10),
		CheckOut: day(2027, 3, 12),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransition_ConfirmHasNoRoomSideEffects(t *testing.T) {
	store := new(mockStore)
	store.On("GetBooking", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:     5,
		RoomID: 1,
		Status: domain.BookingAwaitingPayment,
	}, nil)
	store.On("UpdateBooking", mock.Anything, mock.Anything).Return(nil)

	service := NewService(store)
	b, err := service.Transition(context.Background(), 5, domain.BookingConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	store.AssertNotCalled(t, "SetRoomStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_CheckInMarksRoomOccupied(t *testing.T) {
	store := new(mockStore)
	store.On("GetBooking", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:     5,
		RoomID: 1,
		Status: domain.BookingConfirmed,
	}, nil)
	store.On("UpdateBooking", mock.Anything, mock.Anything).Return(nil)
	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)
	store.On("SetRoomStatus", mock.Anything, int64(1), domain.RoomOccupied).Return(nil)

	service := NewService(store)
	b, err := service.Transition(context.Background(), 5, domain.BookingCheckedIn)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, b.Status)
	store.AssertExpectations(t)
}

func TestTransition_CheckOutFreesRoom(t *testing.T) {
	store := new(mockStore)
	store.On("GetBooking", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:     5,
		RoomID: 1,
		Status: domain.BookingCheckedIn,
	}, nil)
	store.On("UpdateBooking", mock.Anything, mock.Anything).Return(nil)
	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)
	store.On("CountCheckedInForRoom", mock.Anything, int64(1), int64(5)).Return(int64(0), nil)
	store.On("SetRoomStatus", mock.Anything, int64(1), domain.RoomAvailable).Return(nil)

	service := NewService(store)
	b, err := service.Transition(context.Background(), 5, domain.BookingCheckedOut)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, b.Status)
	store.AssertExpectations(t)
}

func TestTransition_CheckOutKeepsRoomWhenAnotherStayHoldsIt(t *testing.T) {
	store := new(mockStore)
	store.On("GetBooking", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:     5,
		RoomID: 1,
		Status: domain.BookingCheckedIn,
	}, nil)
	store.On("UpdateBooking", mock.Anything, mock.Anything).Return(nil)
	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)
	store.On("CountCheckedInForRoom", mock.Anything, int64(1), int64(5)).Return(int64(1), nil)

	service := NewService(store)
	_, err := service.Transition(context.Background(), 5, domain.BookingCheckedOut)

	assert.NoError(t, err)
	store.AssertNotCalled(t, "SetRoomStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_InvalidEdgeRejected(t *testing.T) {
	cases := []struct {
		from, to domain.BookingStatus
	}{
		{domain.BookingCheckedOut, domain.BookingConfirmed},
		{domain.BookingCancelled, domain.BookingConfirmed},
		{domain.BookingAwaitingPayment, domain.BookingCheckedIn},
		{domain.BookingCheckedIn, domain.BookingCancelled},
	}

	for _, tc := range cases {
		store := new(mockStore)
		store.On("GetBooking", mock.Anything, int64(5)).Return(&domain.Booking{
			ID:     5,
			RoomID: 1,
			Status: tc.from,
		}, nil)

		service := NewService(store)
		_, err := service.Transition(context.Background(), 5, tc.to)

		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		store.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything)
	}
}

func TestTransition_UnknownStatusRejected(t *testing.T) {
	service := NewService(new(mockStore))
	_, err := service.Transition(context.Background(), 5, domain.BookingStatus("comfirmed"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_RecomputesPriceWhenDatesChange(t *testing.T) {
	store := new(mockStore)
	store.On("GetBooking", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:           5,
		RoomID:       1,
		CustomerID:   7,
		CheckInDate:  day(2027, 3, 10),
		CheckOutDate: day(2027, 3, 12),
		Status:       domain.BookingConfirmed,
		TotalPrice:   5000,
	}, nil)
	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)
	store.On("OverlappingBookings", mock.Anything, int64(1), day(2027, 3, 10), day(2027, 3, 13), int64(5)).
		Return([]domain.Booking{}, nil)
	store.On("UpdateBooking", mock.Anything, mock.Anything).Return(nil)

	service := NewService(store)
	b, err := service.Update(context.Background(), 5, UpdateBookingInput{
		RoomID:   1,
		CheckIn:  day(2027, 3, 10),
		CheckOut: day(2027, 3, 13),
	})

	assert.NoError(t, err)
	assert.Equal(t, 7500.0, b.TotalPrice) // 3 nights x 2500
	store.AssertExpectations(t)
}

func TestUpdate_CancelledBookingSkipsOverlapCheck(t *testing.T) {
	store := new(mockStore)
	store.On("GetBooking", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:           5,
		RoomID:       1,
		CheckInDate:  day(2027, 3, 10),
		CheckOutDate: day(2027, 3, 12),
		Status:       domain.BookingCancelled,
	}, nil)
	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)
	store.On("UpdateBooking", mock.Anything, mock.Anything).Return(nil)

	service := NewService(store)
	_, err := service.Update(context.Background(), 5, UpdateBookingInput{
		RoomID:   1,
		CheckIn:  day(2027, 3, 10),
		CheckOut: day(2027, 3, 12),
	})

	assert.NoError(t, err)
	store.AssertNotCalled(t, "OverlappingBookings",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_FreesRoomForCheckedInStay(t *testing.T) {
	store := new(mockStore)
	store.On("GetBooking", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:     5,
		RoomID: 1,
		Status: domain.BookingCheckedIn,
	}, nil)
	store.On("LockRoom", mock.Anything, int64(1)).Return(standardRoom(), nil)
	store.On("CountCheckedInForRoom", mock.Anything, int64(1), int64(5)).Return(int64(0), nil)
	store.On("SetRoomStatus", mock.Anything, int64(1), domain.RoomAvailable).Return(nil)
	store.On("DeleteBooking", mock.Anything, int64(5)).Return(nil)

	service := NewService(store)
	err := service.Delete(context.Background(), 5)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestList_UnknownPresetRejected(t *testing.T) {
	service := NewService(new(mockStore))
	_, err := service.List(context.Background(), "", "next_year", "", 10, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGrid_ClampsOversizedWindow(t *testing.T) {
	store := new(mockStore)
	start := day(2027, 1, 1)

	store.On("ListRooms", mock.Anything, RoomGridFilter{}).
		Return([]domain.Room{*standardRoom()}, nil)
	store.On("BookingsInRange", mock.Anything, start, start.AddDate(0, 0, 91), []int64(nil)).
		Return([]domain.Booking{}, nil)

	service := NewService(store)
	grid, err := service.Grid(context.Background(), start, start.AddDate(0, 1, 0).AddDate(1, 0, 0), RoomGridFilter{})

	assert.NoError(t, err)
	assert.Equal(t, 91, grid.Days)
	store.AssertExpectations(t)
}

func TestGrid_ClampsSpansToWindow(t *testing.T) {
	store := new(mockStore)
	start := day(2027, 3, 10)
	end := day(2027, 3, 20)

	store.On("ListRooms", mock.Anything, RoomGridFilter{}).
		Return([]domain.Room{*standardRoom()}, nil)
	store.On("BookingsInRange", mock.Anything, start, end.AddDate(0, 0, 1), []int64(nil)).
		Return([]domain.Booking{
			{
				ID:           1,
				RoomID:       1,
				Status:       domain.BookingConfirmed,
				CheckInDate:  day(2027, 3, 5),
				CheckOutDate: day(2027, 3, 15),
			},
			{
				ID:           2,
				RoomID:       1,
				Status:       domain.BookingCancelled,
				CheckInDate:  day(2027, 3, 16),
				CheckOutDate: day(2027, 3, 18),
			},
		}, nil)

	service := NewService(store)
	grid, err := service.Grid(context.Background(), start, end, RoomGridFilter{})

	assert.NoError(t, err)
	assert.Len(t, grid.Rows, 1)
	// cancelled booking is filtered, the confirmed one is clamped to the window
	assert.Len(t, grid.Rows[0].Spans, 1)
	assert.Equal(t, start, grid.Rows[0].Spans[0].Start)
	assert.Equal(t, day(2027, 3, 15), grid.Rows[0].Spans[0].End)
}

func TestIntegrityScan_FlagsStaleOccupiedRoom(t *testing.T) {
	store := new(mockStore)
	stale := *standardRoom()
	stale.ID = 2
	stale.RoomNumber = "102"
	stale.Status = domain.RoomOccupied

	maint := *standardRoom()
	maint.ID = 3
	maint.RoomNumber = "103"
	maint.Status = domain.RoomMaintenance

	store.On("ListRooms", mock.Anything, RoomGridFilter{}).
		Return([]domain.Room{*standardRoom(), stale, maint}, nil)
	store.On("CheckedInCountsByRoom", mock.Anything).
		Return(map[int64]int64{1: 0, 2: 0}, nil)

	service := NewService(store)
	rows, err := service.IntegrityScan(context.Background())

	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.True(t, rows[0].Consistent)  // available, nobody checked in
	assert.False(t, rows[1].Consistent) // occupied flag but no checked-in stay
	assert.True(t, rows[2].Consistent)  // maintenance is operator-managed
}

func TestNights(t *testing.T) {
	b := domain.Booking{CheckInDate: day(2027, 3, 10), CheckOutDate: day(2027, 3, 13)}
	assert.Equal(t, 3, b.Nights())
}

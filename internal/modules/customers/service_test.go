package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

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

func (m *mockStore) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	if c != nil && c.ID == 0 {
		c.ID = 7
	}
	return args.Error(0)
}

func (m *mockStore) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockStore) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) List(ctx context.Context, q ListQuery) ([]domain.Customer, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockStore) CountActiveBookings(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CountActiveServiceBookings(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) ListBookings(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockStore) ListServiceBookings(ctx context.Context, customerID int64) ([]domain.ServiceBooking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.ServiceBooking), args.Error(1)
}

func validProfile() domain.Customer {
	return domain.Customer{
		FirstName:      "Aidana",
		LastName:       "Serikova",
		Email:          "aidana@example.com",
		Phone:          "+7 701 111 2233",
		PassportNumber: "N12345678",
		Birthday:       time.Date(1992, 4, 17, 0, 0, 0, 0, time.UTC),
	}
}

func TestProfileProblem(t *testing.T) {
	now := time.Date(2027, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("valid profile", func(t *testing.T) {
		assert.Empty(t, ProfileProblem(validProfile(), now))
	})

	t.Run("seventeen year old rejected", func(t *testing.T) {
		c := validProfile()
		c.Birthday = now.AddDate(-18, 0, 1) // turns 18 tomorrow
		assert.NotEmpty(t, ProfileProblem(c, now))
	})

	t.Run("eighteenth birthday today accepted", func(t *testing.T) {
		c := validProfile()
		c.Birthday = now.AddDate(-18, 0, 0)
		assert.Empty(t, ProfileProblem(c, now))
	})

	t.Run("future birthday rejected", func(t *testing.T) {
		c := validProfile()
		c.Birthday = now.AddDate(0, 0, 1)
		assert.NotEmpty(t, ProfileProblem(c, now))
	})

	t.Run("implausibly old rejected", func(t *testing.T) {
		c := validProfile()
		c.Birthday = now.AddDate(-121, 0, 0)
		assert.NotEmpty(t, ProfileProblem(c, now))
	})

	t.Run("malformed phone rejected", func(t *testing.T) {
		c := validProfile()
		c.Phone = "call me maybe"
		assert.NotEmpty(t, ProfileProblem(c, now))
	})
}

func TestCreate_RejectsUnderageCustomer(t *testing.T) {
	service := NewService(new(mockStore))

	_, err := service.Create(context.Background(), CustomerRequest{
		FirstName:      "Too",
		LastName:       "Young",
		Email:          "young@example.com",
		Phone:          "+7 701 111 2233",
		PassportNumber: "N11112222",
		Birthday:       time.Now().AddDate(-17, 0, 0).Format("2006-01-02"),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_RejectsMalformedBirthday(t *testing.T) {
	service := NewService(new(mockStore))

	_, err := service.Create(context.Background(), CustomerRequest{
		FirstName:      "Bad",
		LastName:       "Date",
		Email:          "bad@example.com",
		Phone:          "+7 701 111 2233",
		PassportNumber: "N11112222",
		Birthday:       "17.04.1992",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_Success(t *testing.T) {
	store := new(mockStore)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(store)
	c, err := service.Create(context.Background(), CustomerRequest{
		FirstName:      "Aidana",
		LastName:       "Serikova",
		Email:          "aidana@example.com",
		Phone:          "+7 701 111 2233",
		PassportNumber: "N12345678",
		Birthday:       "1992-04-17",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	store.AssertExpectations(t)
}

func TestDelete_GuardedByActiveRoomBookings(t *testing.T) {
	store := new(mockStore)
	c := validProfile()
	c.ID = 7
	store.On("GetByID", mock.Anything, int64(7)).Return(&c, nil)
	store.On("CountActiveBookings", mock.Anything, int64(7)).Return(int64(1), nil)

	service := NewService(store)
	err := service.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, ErrIntegrity)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_GuardedByActiveServiceBookings(t *testing.T) {
	store := new(mockStore)
	c := validProfile()
	c.ID = 7
	store.On("GetByID", mock.Anything, int64(7)).Return(&c, nil)
	store.On("CountActiveBookings", mock.Anything, int64(7)).Return(int64(0), nil)
	store.On("CountActiveServiceBookings", mock.Anything, int64(7)).Return(int64(2), nil)

	service := NewService(store)
	err := service.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, ErrIntegrity)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_AllowedWithOnlyHistoricalBookings(t *testing.T) {
	store := new(mockStore)
	c := validProfile()
	c.ID = 7
	store.On("GetByID", mock.Anything, int64(7)).Return(&c, nil)
	store.On("CountActiveBookings", mock.Anything, int64(7)).Return(int64(0), nil)
	store.On("CountActiveServiceBookings", mock.Anything, int64(7)).Return(int64(0), nil)
	store.On("Delete", mock.Anything, int64(7)).Return(nil)

	service := NewService(store)
	err := service.Delete(context.Background(), 7)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestBookings_Overview(t *testing.T) {
	store := new(mockStore)
	c := validProfile()
	c.ID = 7
	store.On("GetByID", mock.Anything, int64(7)).Return(&c, nil)
	store.On("ListBookings", mock.Anything, int64(7)).
		Return([]domain.Booking{{ID: 1, CustomerID: 7}}, nil)
	store.On("ListServiceBookings", mock.Anything, int64(7)).
		Return([]domain.ServiceBooking{{ID: 2, CustomerID: 7}}, nil)

	service := NewService(store)
	overview, err := service.Bookings(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), overview.Customer.ID)
	assert.Len(t, overview.RoomBookings, 1)
	assert.Len(t, overview.ServiceBookings, 1)
}

package services

import (
	"context"
	"time"

	"hoteldesk/internal/domain"
)

// Store is the persistence surface of the services module. InTx runs fn
// against a transaction-scoped Store so that the availability check and the
// booking write land in a single transaction.
type Store interface {
	InTx(ctx context.Context, fn func(tx Store) error) error

	CreateCategory(ctx context.Context, c *domain.ServiceCategory) error
	GetCategory(ctx context.Context, id int64) (*domain.ServiceCategory, error)
	UpdateCategory(ctx context.Context, c *domain.ServiceCategory) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.ServiceCategory, error)
	CountServicesInCategory(ctx context.Context, categoryID int64) (int64, error)

	CreateService(ctx context.Context, s *domain.Service) error
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Service) error
	DeleteService(ctx context.Context, id int64) error
	ListServices(ctx context.Context, q ServiceListQuery) ([]domain.Service, error)
	CountServices(ctx context.Context, status domain.ServiceStatus) (int64, error)
	CountBookingsForService(ctx context.Context, serviceID int64) (int64, error)

	CreateServiceBooking(ctx context.Context, b *domain.ServiceBooking) error
	GetServiceBooking(ctx context.Context, id int64) (*domain.ServiceBooking, error)
	UpdateServiceBooking(ctx context.Context, b *domain.ServiceBooking) error
	DeleteServiceBooking(ctx context.Context, id int64) error
	ListServiceBookings(ctx context.Context, q BookingListQuery) ([]domain.ServiceBooking, error)
	CountServiceBookings(ctx context.Context, q BookingListQuery) (int64, error)
	ServiceBookingStatusCounts(ctx context.Context) (map[domain.ServiceBookingStatus]int64, error)

	// OverlappingServiceBookings returns blocking bookings of the given
	// service on the given day whose [start, end) intersects the interval,
	// excluding excludeID when non-zero.
	OverlappingServiceBookings(ctx context.Context, serviceID int64, date, start, end time.Time, excludeID int64) ([]domain.ServiceBooking, error)
	UpcomingServiceBookings(ctx context.Context, from time.Time, limit int) ([]domain.ServiceBooking, error)

	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
}

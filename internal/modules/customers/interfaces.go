package customers

import (
	"context"

	"hoteldesk/internal/domain"
)

// Store is the persistence surface the customer service needs. InTx runs fn
// against a transaction-scoped Store so the delete guard and the delete
// commit together.
type Store interface {
	InTx(ctx context.Context, fn func(tx Store) error) error

	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q ListQuery) ([]domain.Customer, error)

	CountActiveBookings(ctx context.Context, customerID int64) (int64, error)
	CountActiveServiceBookings(ctx context.Context, customerID int64) (int64, error)
	ListBookings(ctx context.Context, customerID int64) ([]domain.Booking, error)
	ListServiceBookings(ctx context.Context, customerID int64) ([]domain.ServiceBooking, error)
}

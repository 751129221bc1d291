package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/pkg/validator"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{4,19}$`)

// ProfileProblem checks the policy rules on a customer profile and returns a
// human-readable problem, or "" when the profile is acceptable. Shared by the
// customer CRUD paths and the booking create-with-new-customer path.
func ProfileProblem(c domain.Customer, now time.Time) string {
	if c.Birthday.After(now) {
		return "birthday cannot be in the future"
	}
	if age := c.AgeAt(now); age < domain.MinCustomerAge {
		return fmt.Sprintf("customer must be at least %d years old", domain.MinCustomerAge)
	} else if age > domain.MaxCustomerAge {
		return "birthday does not look correct"
	}
	if !phonePattern.MatchString(c.Phone) {
		return "phone number is malformed"
	}
	return ""
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, req CustomerRequest) (*domain.Customer, error) {
	c, err := req.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid birthday", ErrValidation)
	}
	if fields := validator.Validate(&c); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}
	if msg := ProfileProblem(c, time.Now()); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrValidation, msg)
	}
	if err := s.store.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.store.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *Service) Update(ctx context.Context, id int64, req CustomerRequest) (*domain.Customer, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := req.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid birthday", ErrValidation)
	}
	if fields := validator.Validate(&c); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}
	if msg := ProfileProblem(c, time.Now()); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	if err := s.store.Update(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Customer, error) {
	return s.store.List(ctx, q)
}

// Delete refuses to remove a customer that still has active room or service
// bookings; historical (terminal) bookings do not block removal. The guard
// and the delete run in one transaction so a booking created in between
// cannot slip past.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	return s.store.InTx(ctx, func(tx Store) error {
		active, err := tx.CountActiveBookings(ctx, id)
		if err != nil {
			return err
		}
		if active == 0 {
			active, err = tx.CountActiveServiceBookings(ctx, id)
			if err != nil {
				return err
			}
		}
		if active > 0 {
			return fmt.Errorf("%w: %d active booking(s)", ErrIntegrity, active)
		}
		return tx.Delete(ctx, id)
	})
}

// Bookings returns the customer's room and service bookings for the
// per-customer history view.
func (s *Service) Bookings(ctx context.Context, id int64) (*BookingsOverview, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roomBookings, err := s.store.ListBookings(ctx, id)
	if err != nil {
		return nil, err
	}
	serviceBookings, err := s.store.ListServiceBookings(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BookingsOverview{
		Customer:        c,
		RoomBookings:    roomBookings,
		ServiceBookings: serviceBookings,
	}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func conflictsOf(bookings []domain.ServiceBooking) []Conflict {
	conflicts := make([]Conflict, 0, len(bookings))
	for _, b := range bookings {
		name := ""
		if b.Customer != nil {
			name = b.Customer.FullName()
		}
		conflicts = append(conflicts, Conflict{
			BookingID:    b.ID,
			CustomerName: name,
			Status:       b.Status,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
		})
	}
	return conflicts
}

// CheckAvailability answers whether one service slot can be booked: policy
// checks first (past, lead time, capacity, midnight), then the overlap scan
// against blocking bookings of the same service on the same day.
func (s *Service) CheckAvailability(ctx context.Context, serviceID int64, start time.Time, participants int, excludeID int64) (*AvailabilityResult, error) {
	svc, err := s.fetchService(ctx, s.store, serviceID)
	if err != nil {
		return nil, err
	}
	return s.resolveSlot(ctx, s.store, svc, start, participants, excludeID)
}

func (s *Service) resolveSlot(ctx context.Context, tx Store, svc *domain.Service, start time.Time, participants int, excludeID int64) (*AvailabilityResult, error) {
	now := time.Now()
	if svc.Status == domain.ServiceUnavailable {
		return nil, fmt.Errorf("%w: service %q is not bookable", ErrValidation, svc.Name)
	}
	if !start.After(now) {
		return nil, fmt.Errorf("%w: start time must be in the future", ErrValidation)
	}
	if svc.MinBookingHours > 0 && start.Before(now.Add(time.Duration(svc.MinBookingHours)*time.Hour)) {
		return nil, fmt.Errorf("%w: service %q requires at least %d hours notice", ErrValidation, svc.Name, svc.MinBookingHours)
	}
	if participants < 1 {
		return nil, fmt.Errorf("%w: participants must be at least 1", ErrValidation)
	}
	if participants > svc.MaxCapacity {
		return nil, fmt.Errorf("%w: service %q takes at most %d participant(s)", ErrValidation, svc.Name, svc.MaxCapacity)
	}

	day := dateOnly(start)
	end := start.Add(svc.Duration())
	if !dateOnly(end).Equal(day) {
		return nil, fmt.Errorf("%w: appointment would run past midnight", ErrValidation)
	}

	clashing, err := tx.OverlappingServiceBookings(ctx, svc.ID, day, start, end, excludeID)
	if err != nil {
		return nil, err
	}

	res := &AvailabilityResult{
		Available: len(clashing) == 0,
		StartTime: start,
		EndTime:   end,
	}
	if len(clashing) > 0 {
		res.Conflicts = conflictsOf(clashing)
	}
	return res, nil
}

// applyDerivations fills end time and total price when unset, leaving
// already-set values alone on later saves.
func applyDerivations(b *domain.ServiceBooking, svc *domain.Service) {
	if b.EndTime.IsZero() {
		b.EndTime = b.StartTime.Add(svc.Duration())
	}
	if b.TotalPrice == 0 {
		b.TotalPrice = svc.Price * float64(b.Participants)
	}
}

// CreateBooking verifies the slot and writes the appointment inside one
// transaction. New appointments start in pending.
func (s *Service) CreateBooking(ctx context.Context, in BookingInput) (*domain.ServiceBooking, error) {
	var created *domain.ServiceBooking
	err := s.store.InTx(ctx, func(tx Store) error {
		svc, err := s.fetchService(ctx, tx, in.ServiceID)
		if err != nil {
			return err
		}
		if _, err := tx.GetCustomer(ctx, in.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		res, err := s.resolveSlot(ctx, tx, svc, in.Start, in.Participants, 0)
		if err != nil {
			return err
		}
		if !res.Available {
			return &ConflictError{Conflicts: res.Conflicts}
		}

		b := &domain.ServiceBooking{
			CustomerID:      in.CustomerID,
			ServiceID:       svc.ID,
			BookingDate:     dateOnly(in.Start),
			StartTime:       in.Start,
			Participants:    in.Participants,
			Status:          domain.ServiceBookingPending,
			SpecialRequests: in.SpecialRequests,
			Notes:           in.Notes,
			CreatedBy:       in.CreatedBy,
		}
		applyDerivations(b, svc)

		if err := tx.CreateServiceBooking(ctx, b); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23P01") {
				return ErrConflict
			}
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.ServiceBooking, error) {
	b, err := s.store.GetServiceBooking(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// Update edits an appointment. Rescheduling (service, start time or
// participants) re-runs the slot resolver and re-derives end time and price;
// it is only allowed while the booking still blocks its slot. Status changes
// go through Transition, never through here.
func (s *Service) Update(ctx context.Context, id int64, in BookingInput) (*domain.ServiceBooking, error) {
	var out *domain.ServiceBooking
	err := s.store.InTx(ctx, func(tx Store) error {
		b, err := tx.GetServiceBooking(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return err
		}

		svc, err := s.fetchService(ctx, tx, in.ServiceID)
		if err != nil {
			return err
		}
		if _, err := tx.GetCustomer(ctx, in.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		slotChanged := b.ServiceID != in.ServiceID ||
			!b.StartTime.Equal(in.Start) ||
			b.Participants != in.Participants
		if slotChanged {
			if !b.Status.Blocking() {
				return fmt.Errorf("%w: only pending, confirmed or in-progress bookings can be rescheduled", ErrValidation)
			}
			res, err := s.resolveSlot(ctx, tx, svc, in.Start, in.Participants, b.ID)
			if err != nil {
				return err
			}
			if !res.Available {
				return &ConflictError{Conflicts: res.Conflicts}
			}
			b.EndTime = res.EndTime
			b.TotalPrice = svc.Price * float64(in.Participants)
		}

		b.CustomerID = in.CustomerID
		b.ServiceID = svc.ID
		b.BookingDate = dateOnly(in.Start)
		b.StartTime = in.Start
		b.Participants = in.Participants
		b.SpecialRequests = in.SpecialRequests
		b.Notes = in.Notes

		if err := tx.UpdateServiceBooking(ctx, b); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23P01") {
				return ErrConflict
			}
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transition moves an appointment through its state machine. Terminal
// statuses (completed, cancelled, no_show) have no outgoing edges.
func (s *Service) Transition(ctx context.Context, id int64, next domain.ServiceBookingStatus) (*domain.ServiceBooking, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	var out *domain.ServiceBooking
	err := s.store.InTx(ctx, func(tx Store) error {
		b, err := tx.GetServiceBooking(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return err
		}

		if !b.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
		}

		b.Status = next
		if err := tx.UpdateServiceBooking(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteServiceBooking(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookingNotFound
	}
	return err
}

// ListBookings applies the appointment list filters: an exact day, a status,
// one service, and free-text search over the customer.
func (s *Service) ListBookings(ctx context.Context, status domain.ServiceBookingStatus, date string, serviceID int64, search string, limit, offset int) ([]domain.ServiceBooking, error) {
	q := BookingListQuery{
		ServiceID:     serviceID,
		Search:        search,
		OrderByRecent: true,
		Limit:         limit,
		Offset:        offset,
	}
	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
		}
		q.Statuses = []domain.ServiceBookingStatus{status}
	}
	if date != "" {
		day, err := parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		q.Date = &day
	}

	return s.store.ListServiceBookings(ctx, q)
}

// Dashboard aggregates the service counters shown on the back-office
// landing page.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	total, err := s.store.CountServices(ctx, "")
	if err != nil {
		return nil, err
	}
	active, err := s.store.CountServices(ctx, domain.ServiceAvailable)
	if err != nil {
		return nil, err
	}

	today := dateOnly(time.Now())
	todayBookings, err := s.store.CountServiceBookings(ctx, BookingListQuery{Date: &today})
	if err != nil {
		return nil, err
	}
	pending, err := s.store.CountServiceBookings(ctx, BookingListQuery{
		Statuses: []domain.ServiceBookingStatus{domain.ServiceBookingPending},
	})
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.store.ServiceBookingStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.store.UpcomingServiceBookings(ctx, time.Now(), 10)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalServices:    total,
		ActiveServices:   active,
		TodayBookings:    todayBookings,
		PendingBookings:  pending,
		StatusCounts:     statusCounts,
		UpcomingBookings: upcoming,
	}, nil
}

func (s *Service) fetchService(ctx context.Context, tx Store, id int64) (*domain.Service, error) {
	svc, err := tx.GetService(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotFound
	}
	return svc, err
}

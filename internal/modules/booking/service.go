package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/modules/customers"
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

func nightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

func conflictsOf(bookings []domain.Booking) *ConflictError {
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
			CheckInDate:  b.CheckInDate,
			CheckOutDate: b.CheckOutDate,
		})
	}
	return &ConflictError{Conflicts: conflicts}
}

// FindAvailableRooms returns rooms with no active booking overlapping
// [checkIn, checkOut), honoring the optional type/floor/capacity filter.
// Only rooms whose cached flag is available are returned.
func (s *Service) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, f RoomFilter) ([]domain.Room, error) {
	checkIn, checkOut = dateOnly(checkIn), dateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out must be strictly after check-in", ErrValidation)
	}

	occupied, err := s.store.OccupiedRoomIDs(ctx, checkIn, checkOut, 0)
	if err != nil {
		return nil, err
	}

	return s.store.AvailableRooms(ctx, f, occupied)
}

// CreateBooking resolves the customer reference, verifies availability and
// writes the booking, all inside one transaction. New bookings start in
// awaiting_payment and are priced at nights x the room type's nightly rate.
func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	checkIn, checkOut := dateOnly(in.CheckIn), dateOnly(in.CheckOut)
	nights := nightsBetween(checkIn, checkOut)
	if nights < 1 {
		return nil, fmt.Errorf("%w: stay must cover at least one night", ErrValidation)
	}

	var created *domain.Booking
	err := s.store.InTx(ctx, func(tx Store) error {
		room, err := tx.LockRoom(ctx, in.RoomID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}
		if room.Status == domain.RoomMaintenance {
			return fmt.Errorf("%w: room %s is under maintenance", ErrValidation, room.RoomNumber)
		}
		if room.RoomType == nil {
			return fmt.Errorf("%w: room %s has no room type", ErrValidation, room.RoomNumber)
		}

		customerID, err := s.resolveCustomer(ctx, tx, in.Customer)
		if err != nil {
			return err
		}

		clashing, err := tx.OverlappingBookings(ctx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if len(clashing) > 0 {
			return conflictsOf(clashing)
		}

		b := &domain.Booking{
			CustomerID:      customerID,
			RoomID:          room.ID,
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			Status:          domain.BookingAwaitingPayment,
			TotalPrice:      float64(nights) * room.RoomType.PricePerNight,
			SpecialRequests: in.SpecialRequests,
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
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

// resolveCustomer turns the Existing(id) | New(fields) variant into a
// concrete customer ID before the lifecycle logic runs.
func (s *Service) resolveCustomer(ctx context.Context, tx Store, ref CustomerRef) (int64, error) {
	switch {
	case ref.New != nil:
		c := *ref.New
		if msg := customers.ProfileProblem(c, time.Now()); msg != "" {
			return 0, fmt.Errorf("%w: %s", ErrValidation, msg)
		}
		if err := tx.CreateCustomer(ctx, &c); err != nil {
			return 0, err
		}
		return c.ID, nil

	case ref.ExistingID > 0:
		c, err := tx.GetCustomer(ctx, ref.ExistingID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCustomerNotFound
		}
		if err != nil {
			return 0, err
		}
		return c.ID, nil

	default:
		return 0, fmt.Errorf("%w: a customer reference is required", ErrValidation)
	}
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.store.GetBooking(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

// Transition moves a booking through its state machine and applies the room
// occupancy side effects in the same transaction.
func (s *Service) Transition(ctx context.Context, id int64, next domain.BookingStatus) (*domain.Booking, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	var out *domain.Booking
	err := s.store.InTx(ctx, func(tx Store) error {
		b, err := tx.GetBooking(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		prev := b.Status
		if !prev.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev, next)
		}

		b.Status = next
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}

		switch {
		case next == domain.BookingCheckedIn:
			if _, err := tx.LockRoom(ctx, b.RoomID); err != nil {
				return err
			}
			if err := tx.SetRoomStatus(ctx, b.RoomID, domain.RoomOccupied); err != nil {
				return err
			}

		case prev == domain.BookingCheckedIn &&
			(next == domain.BookingCheckedOut || next == domain.BookingCancelled):
			if err := s.releaseRoomUnlessHeld(ctx, tx, b.RoomID, b.ID); err != nil {
				return err
			}
		}

		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// releaseRoomUnlessHeld flips the room back to available unless another
// checked-in booking still holds it. This guards against a room swap leaving
// a stale occupied flag behind.
func (s *Service) releaseRoomUnlessHeld(ctx context.Context, tx Store, roomID, excludeBookingID int64) error {
	if _, err := tx.LockRoom(ctx, roomID); err != nil {
		return err
	}
	held, err := tx.CountCheckedInForRoom(ctx, roomID, excludeBookingID)
	if err != nil {
		return err
	}
	if held > 0 {
		return nil
	}
	return tx.SetRoomStatus(ctx, roomID, domain.RoomAvailable)
}

// Update edits a booking's room, dates and requests. Price is recomputed
// whenever the dates or the room change; status changes go through
// Transition, never through here.
func (s *Service) Update(ctx context.Context, id int64, in UpdateBookingInput) (*domain.Booking, error) {
	checkIn, checkOut := dateOnly(in.CheckIn), dateOnly(in.CheckOut)
	nights := nightsBetween(checkIn, checkOut)
	if nights < 1 {
		return nil, fmt.Errorf("%w: stay must cover at least one night", ErrValidation)
	}

	var out *domain.Booking
	err := s.store.InTx(ctx, func(tx Store) error {
		b, err := tx.GetBooking(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		room, err := tx.LockRoom(ctx, in.RoomID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}
		roomChanged := b.RoomID != room.ID
		if roomChanged && room.Status == domain.RoomMaintenance {
			return fmt.Errorf("%w: room %s is under maintenance", ErrValidation, room.RoomNumber)
		}
		if room.RoomType == nil {
			return fmt.Errorf("%w: room %s has no room type", ErrValidation, room.RoomNumber)
		}

		if b.Status.Active() {
			clashing, err := tx.OverlappingBookings(ctx, room.ID, checkIn, checkOut, b.ID)
			if err != nil {
				return err
			}
			if len(clashing) > 0 {
				return conflictsOf(clashing)
			}
		}

		if roomChanged && b.Status == domain.BookingCheckedIn {
			if err := s.releaseRoomUnlessHeld(ctx, tx, b.RoomID, b.ID); err != nil {
				return err
			}
			if err := tx.SetRoomStatus(ctx, room.ID, domain.RoomOccupied); err != nil {
				return err
			}
		}

		datesChanged := !checkIn.Equal(b.CheckInDate) || !checkOut.Equal(b.CheckOutDate)
		if roomChanged || datesChanged {
			b.TotalPrice = float64(nights) * room.RoomType.PricePerNight
		}

		b.RoomID = room.ID
		b.CheckInDate = checkIn
		b.CheckOutDate = checkOut
		b.SpecialRequests = in.SpecialRequests

		if err := tx.UpdateBooking(ctx, b); err != nil {
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

// Delete removes a booking, freeing its room first when the stay was
// checked in. Deletion is supported for operator cleanup; cancellation is
// the primary path.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(tx Store) error {
		b, err := tx.GetBooking(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if b.Status == domain.BookingCheckedIn {
			if err := s.releaseRoomUnlessHeld(ctx, tx, b.RoomID, b.ID); err != nil {
				return err
			}
		}

		return tx.DeleteBooking(ctx, id)
	})
}

// List applies the back-office list filters: status, a date preset over the
// check-in date, and free-text search.
func (s *Service) List(ctx context.Context, status domain.BookingStatus, datePreset, search string, limit, offset int) ([]domain.Booking, error) {
	q := ListQuery{
		Search:        search,
		OrderByRecent: true,
		Limit:         limit,
		Offset:        offset,
	}
	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
		}
		q.Statuses = []domain.BookingStatus{status}
	}

	today := dateOnly(time.Now())
	switch datePreset {
	case "":
	case "today":
		q.CheckInOn = &today
	case "tomorrow":
		tomorrow := today.AddDate(0, 0, 1)
		q.CheckInOn = &tomorrow
	case "this_week":
		weekStart := today.AddDate(0, 0, -int(today.Weekday()-time.Monday))
		if today.Weekday() == time.Sunday {
			weekStart = today.AddDate(0, 0, -6)
		}
		weekEnd := weekStart.AddDate(0, 0, 7)
		q.CheckInFrom = &weekStart
		q.CheckInTo = &weekEnd
	case "upcoming":
		q.CheckInFrom = &today
	default:
		return nil, fmt.Errorf("%w: unknown date preset %q", ErrValidation, datePreset)
	}

	return s.store.ListBookings(ctx, q)
}

func (s *Service) ListPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	if _, err := s.GetBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.store.ListPayments(ctx, bookingID)
}

package rooms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateRoomType(ctx context.Context, req RoomTypeRequest) (*domain.RoomType, error) {
	if req.Capacity < 1 || req.Capacity > 8 {
		return nil, fmt.Errorf("%w: capacity must be between 1 and 8", ErrValidation)
	}

	rt := &domain.RoomType{
		Name:          req.Name,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
	}
	if err := s.store.CreateRoomType(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	rt, err := s.store.GetRoomType(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomTypeNotFound
	}
	return rt, err
}

func (s *Service) UpdateRoomType(ctx context.Context, id int64, req RoomTypeRequest) (*domain.RoomType, error) {
	if req.Capacity < 1 || req.Capacity > 8 {
		return nil, fmt.Errorf("%w: capacity must be between 1 and 8", ErrValidation)
	}

	rt, err := s.GetRoomType(ctx, id)
	if err != nil {
		return nil, err
	}

	rt.Name = req.Name
	rt.Description = req.Description
	rt.PricePerNight = req.PricePerNight
	rt.Capacity = req.Capacity

	if err := s.store.UpdateRoomType(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// DeleteRoomType removes a room type. When reassignTo names another type,
// every room of the deleted type is moved there first, in the same
// transaction; without a reassignment target the type must have no rooms.
func (s *Service) DeleteRoomType(ctx context.Context, id, reassignTo int64) error {
	return s.store.InTx(ctx, func(tx Store) error {
		if _, err := tx.GetRoomType(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomTypeNotFound
			}
			return err
		}

		if reassignTo > 0 {
			if reassignTo == id {
				return fmt.Errorf("%w: cannot reassign rooms to the type being deleted", ErrValidation)
			}
			if _, err := tx.GetRoomType(ctx, reassignTo); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomTypeNotFound
				}
				return err
			}
			if _, err := tx.ReassignRooms(ctx, id, reassignTo); err != nil {
				return err
			}
		} else {
			n, err := tx.CountRoomsOfType(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: room type has %d room(s); pass reassign_to to move them", ErrIntegrity, n)
			}
		}

		return tx.DeleteRoomType(ctx, id)
	})
}

func (s *Service) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	return s.store.ListRoomTypes(ctx)
}

func (s *Service) validateRoomRequest(ctx context.Context, req RoomRequest) error {
	if req.Floor < 1 || req.Floor > 10 {
		return fmt.Errorf("%w: floor must be between 1 and 10", ErrValidation)
	}
	if req.Status != "" && !req.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	if _, err := s.store.GetRoomType(ctx, req.RoomTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomTypeNotFound
		}
		return err
	}
	return nil
}

func amenitiesJSON(amenities []string) (datatypes.JSON, error) {
	if amenities == nil {
		amenities = []string{}
	}
	raw, err := json.Marshal(amenities)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (s *Service) CreateRoom(ctx context.Context, req RoomRequest) (*domain.Room, error) {
	if err := s.validateRoomRequest(ctx, req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.RoomAvailable
	}
	amenities, err := amenitiesJSON(req.Amenities)
	if err != nil {
		return nil, err
	}

	r := &domain.Room{
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		Status:     status,
		Floor:      req.Floor,
		Amenities:  amenities,
	}
	if err := s.store.CreateRoom(ctx, r); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, req.RoomNumber)
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	r, err := s.store.GetRoom(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	return r, err
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req RoomRequest) (*domain.Room, error) {
	r, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateRoomRequest(ctx, req); err != nil {
		return nil, err
	}

	amenities, err := amenitiesJSON(req.Amenities)
	if err != nil {
		return nil, err
	}

	r.RoomNumber = req.RoomNumber
	r.RoomTypeID = req.RoomTypeID
	if req.Status != "" {
		r.Status = req.Status
	}
	r.Floor = req.Floor
	r.Amenities = amenities

	if err := s.store.UpdateRoom(ctx, r); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, req.RoomNumber)
		}
		return nil, err
	}
	return r, nil
}

// DeleteRoom refuses to delete a room that still has active bookings.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(tx Store) error {
		if _, err := tx.GetRoom(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		n, err := tx.CountActiveBookingsForRoom(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: room has %d active booking(s)", ErrIntegrity, n)
		}
		return tx.DeleteRoom(ctx, id)
	})
}

func (s *Service) ListRooms(ctx context.Context, q RoomListQuery) ([]domain.Room, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, q.Status)
	}
	return s.store.ListRooms(ctx, q)
}

// Dashboard aggregates the room counters shown on the back-office landing
// page. Occupancy rate is the occupied share of all rooms.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	total, err := s.store.CountRooms(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.store.CountRoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.store.RoomStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if total > 0 {
		rate = float64(statusCounts[domain.RoomOccupied]) / float64(total)
	}

	return &DashboardStats{
		TotalRooms:     total,
		TotalRoomTypes: types,
		StatusCounts:   statusCounts,
		OccupancyRate:  rate,
	}, nil
}

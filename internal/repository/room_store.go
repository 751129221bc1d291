package repository

import (
	"context"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/modules/rooms"
)

// RoomStore backs room and room type administration with gorm.
type RoomStore struct {
	db *gorm.DB
}

func NewRoomStore(db *gorm.DB) *RoomStore {
	return &RoomStore{db: db}
}

func (s *RoomStore) InTx(ctx context.Context, fn func(tx rooms.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RoomStore{db: tx})
	})
}

func (s *RoomStore) CreateRoomType(ctx context.Context, rt *domain.RoomType) error {
	m := toRoomTypeModel(rt)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*rt = *toDomainRoomType(m)
	return nil
}

func (s *RoomStore) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	var m roomTypeModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainRoomType(m), nil
}

func (s *RoomStore) UpdateRoomType(ctx context.Context, rt *domain.RoomType) error {
	m := toRoomTypeModel(rt)
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	rt.UpdatedAt = m.UpdatedAt
	return nil
}

func (s *RoomStore) DeleteRoomType(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Delete(&roomTypeModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *RoomStore) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	var models []roomTypeModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.RoomType, len(models))
	for i, m := range models {
		out[i] = *toDomainRoomType(m)
	}
	return out, nil
}

func (s *RoomStore) CountRoomTypes(ctx context.Context) (int64, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&roomTypeModel{}).Count(&cnt).Error
	return cnt, err
}

func (s *RoomStore) CountRoomsOfType(ctx context.Context, roomTypeID int64) (int64, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&roomModel{}).
		Where("room_type_id = ?", roomTypeID).
		Count(&cnt).Error
	return cnt, err
}

func (s *RoomStore) ReassignRooms(ctx context.Context, fromTypeID, toTypeID int64) (int64, error) {
	tx := s.db.WithContext(ctx).Model(&roomModel{}).
		Where("room_type_id = ?", fromTypeID).
		Update("room_type_id", toTypeID)
	return tx.RowsAffected, tx.Error
}

func (s *RoomStore) CreateRoom(ctx context.Context, r *domain.Room) error {
	m := toRoomModel(r)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*r = *toDomainRoom(m)
	return nil
}

func (s *RoomStore) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	err := s.db.WithContext(ctx).Preload("RoomType").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

func (s *RoomStore) UpdateRoom(ctx context.Context, r *domain.Room) error {
	m := toRoomModel(r)
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	r.UpdatedAt = m.UpdatedAt
	return nil
}

func (s *RoomStore) DeleteRoom(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *RoomStore) ListRooms(ctx context.Context, q rooms.RoomListQuery) ([]domain.Room, error) {
	db := s.db.WithContext(ctx).Model(&roomModel{}).Preload("RoomType")
	if q.RoomTypeID > 0 {
		db = db.Where("room_type_id = ?", q.RoomTypeID)
	}
	if q.Floor > 0 {
		db = db.Where("floor = ?", q.Floor)
	}
	if q.Status != "" {
		db = db.Where("status = ?", string(q.Status))
	}
	if q.Search != "" {
		db = db.Where("room_number LIKE ?", "%"+q.Search+"%")
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	var models []roomModel
	if err := db.Order("floor ASC, room_number ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Room, len(models))
	for i, m := range models {
		out[i] = *toDomainRoom(m)
	}
	return out, nil
}

func (s *RoomStore) CountRooms(ctx context.Context) (int64, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&roomModel{}).Count(&cnt).Error
	return cnt, err
}

func (s *RoomStore) RoomStatusCounts(ctx context.Context) (map[domain.RoomStatus]int64, error) {
	var rows []struct {
		Status string
		Cnt    int64
	}
	err := s.db.WithContext(ctx).Model(&roomModel{}).
		Select("status, COUNT(1) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.RoomStatus]int64, len(rows))
	for _, r := range rows {
		out[domain.RoomStatus(r.Status)] = r.Cnt
	}
	return out, nil
}

func (s *RoomStore) CountActiveBookingsForRoom(ctx context.Context, roomID int64) (int64, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", statusStrings(domain.ActiveBookingStatuses)).
		Count(&cnt).Error
	return cnt, err
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/modules/booking"
)

// BookingStore backs the reservation core with gorm. InTx hands out a store
// bound to the transaction, so row locks taken through it hold until commit.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) InTx(ctx context.Context, fn func(tx booking.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingStore{db: tx})
	})
}

func statusStrings[T ~string](statuses []T) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

func (s *BookingStore) CreateBooking(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (s *BookingStore) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Room").
		Preload("Room.RoomType").
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (s *BookingStore) UpdateBooking(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	b.UpdatedAt = m.UpdatedAt
	return nil
}

func (s *BookingStore) DeleteBooking(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *BookingStore) applyListQuery(db *gorm.DB, q booking.ListQuery) *gorm.DB {
	if len(q.Statuses) > 0 {
		db = db.Where("bookings.status IN ?", statusStrings(q.Statuses))
	}
	if q.CheckInOn != nil {
		db = db.Where("bookings.check_in_date = ?", *q.CheckInOn)
	}
	if q.CheckOutOn != nil {
		db = db.Where("bookings.check_out_date = ?", *q.CheckOutOn)
	}
	if q.CheckInFrom != nil {
		db = db.Where("bookings.check_in_date >= ?", *q.CheckInFrom)
	}
	if q.CheckInTo != nil {
		db = db.Where("bookings.check_in_date < ?", *q.CheckInTo)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		db = db.
			Joins("LEFT JOIN customers ON customers.id = bookings.customer_id").
			Joins("LEFT JOIN rooms ON rooms.id = bookings.room_id").
			Where(`LOWER(customers.first_name) LIKE LOWER(?)
				OR LOWER(customers.last_name) LIKE LOWER(?)
				OR customers.phone LIKE ?
				OR rooms.room_number LIKE ?`,
				pattern, pattern, pattern, pattern)
	}
	return db
}

func (s *BookingStore) ListBookings(ctx context.Context, q booking.ListQuery) ([]domain.Booking, error) {
	db := s.applyListQuery(s.db.WithContext(ctx).Model(&bookingModel{}), q).
		Preload("Customer").
		Preload("Room").
		Preload("Room.RoomType")
	if q.OrderByRecent {
		db = db.Order("bookings.created_at DESC")
	} else {
		db = db.Order("bookings.check_in_date ASC")
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	var models []bookingModel
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, len(models))
	for i, m := range models {
		out[i] = *toDomainBooking(m)
	}
	return out, nil
}

func (s *BookingStore) CountBookings(ctx context.Context, q booking.ListQuery) (int64, error) {
	var cnt int64
	db := s.applyListQuery(s.db.WithContext(ctx).Model(&bookingModel{}), q)
	err := db.Count(&cnt).Error
	return cnt, err
}

func (s *BookingStore) StatusCounts(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	var rows []struct {
		Status string
		Cnt    int64
	}
	err := s.db.WithContext(ctx).Model(&bookingModel{}).
		Select("status, COUNT(1) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.BookingStatus]int64, len(rows))
	for _, r := range rows {
		out[domain.BookingStatus(r.Status)] = r.Cnt
	}
	return out, nil
}

func (s *BookingStore) OccupiedRoomIDs(ctx context.Context, checkIn, checkOut time.Time, excludeBookingID int64) ([]int64, error) {
	db := s.db.WithContext(ctx).Model(&bookingModel{}).
		Distinct("room_id").
		Where("status IN ?", statusStrings(domain.ActiveBookingStatuses)).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeBookingID > 0 {
		db = db.Where("id <> ?", excludeBookingID)
	}

	var ids []int64
	if err := db.Pluck("room_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *BookingStore) OverlappingBookings(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error) {
	db := s.db.WithContext(ctx).
		Preload("Customer").
		Where("room_id = ?", roomID).
		Where("status IN ?", statusStrings(domain.ActiveBookingStatuses)).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Order("check_in_date ASC")
	if excludeBookingID > 0 {
		db = db.Where("id <> ?", excludeBookingID)
	}

	var models []bookingModel
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, len(models))
	for i, m := range models {
		out[i] = *toDomainBooking(m)
	}
	return out, nil
}

func (s *BookingStore) BookingsInRange(ctx context.Context, from, to time.Time, roomIDs []int64) ([]domain.Booking, error) {
	db := s.db.WithContext(ctx).
		Preload("Customer").
		Where("check_in_date < ? AND check_out_date > ?", to, from)
	if len(roomIDs) > 0 {
		db = db.Where("room_id IN ?", roomIDs)
	}

	var models []bookingModel
	if err := db.Order("check_in_date ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, len(models))
	for i, m := range models {
		out[i] = *toDomainBooking(m)
	}
	return out, nil
}

func (s *BookingStore) CountCheckedInForRoom(ctx context.Context, roomID, excludeBookingID int64) (int64, error) {
	db := s.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ? AND status = ?", roomID, string(domain.BookingCheckedIn))
	if excludeBookingID > 0 {
		db = db.Where("id <> ?", excludeBookingID)
	}
	var cnt int64
	err := db.Count(&cnt).Error
	return cnt, err
}

func (s *BookingStore) CheckedInCountsByRoom(ctx context.Context) (map[int64]int64, error) {
	var rows []struct {
		RoomID int64
		Cnt    int64
	}
	err := s.db.WithContext(ctx).Model(&bookingModel{}).
		Select("room_id, COUNT(1) AS cnt").
		Where("status = ?", string(domain.BookingCheckedIn)).
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int64]int64, len(rows))
	for _, r := range rows {
		out[r.RoomID] = r.Cnt
	}
	return out, nil
}

func (s *BookingStore) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	err := s.db.WithContext(ctx).Preload("RoomType").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

func (s *BookingStore) LockRoom(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("RoomType").
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

func (s *BookingStore) SetRoomStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	return s.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ?", roomID).
		Update("status", string(status)).Error
}

func (s *BookingStore) AvailableRooms(ctx context.Context, f booking.RoomFilter, excludeRoomIDs []int64) ([]domain.Room, error) {
	db := s.db.WithContext(ctx).Model(&roomModel{}).
		Preload("RoomType").
		Where("rooms.status = ?", string(domain.RoomAvailable))
	if len(excludeRoomIDs) > 0 {
		db = db.Where("rooms.id NOT IN ?", excludeRoomIDs)
	}
	if f.RoomTypeID > 0 {
		db = db.Where("rooms.room_type_id = ?", f.RoomTypeID)
	}
	if f.Floor > 0 {
		db = db.Where("rooms.floor = ?", f.Floor)
	}
	if f.MinCapacity > 0 {
		db = db.
			Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
			Where("room_types.capacity >= ?", f.MinCapacity)
	}

	var models []roomModel
	if err := db.Order("rooms.room_number ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Room, len(models))
	for i, m := range models {
		out[i] = *toDomainRoom(m)
	}
	return out, nil
}

func (s *BookingStore) ListRooms(ctx context.Context, f booking.RoomGridFilter) ([]domain.Room, error) {
	db := s.db.WithContext(ctx).Model(&roomModel{}).Preload("RoomType")
	if f.RoomTypeID > 0 {
		db = db.Where("room_type_id = ?", f.RoomTypeID)
	}
	if f.Floor > 0 {
		db = db.Where("floor = ?", f.Floor)
	}
	if f.Status != "" {
		db = db.Where("status = ?", string(f.Status))
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

func (s *BookingStore) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var m customerModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainCustomer(m), nil
}

func (s *BookingStore) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*c = *toDomainCustomer(m)
	return nil
}

func (s *BookingStore) ListPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var models []paymentModel
	err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("paid_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payment, len(models))
	for i, m := range models {
		out[i] = toDomainPayment(m)
	}
	return out, nil
}

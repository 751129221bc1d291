package repository

import (
	"context"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/modules/customers"
)

// CustomerStore backs the customer directory with gorm.
type CustomerStore struct {
	db *gorm.DB
}

func NewCustomerStore(db *gorm.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) InTx(ctx context.Context, fn func(tx customers.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CustomerStore{db: tx})
	})
}

func (s *CustomerStore) Create(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*c = *toDomainCustomer(m)
	return nil
}

func (s *CustomerStore) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var m customerModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainCustomer(m), nil
}

func (s *CustomerStore) Update(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	c.UpdatedAt = m.UpdatedAt
	return nil
}

func (s *CustomerStore) Delete(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Delete(&customerModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *CustomerStore) List(ctx context.Context, q customers.ListQuery) ([]domain.Customer, error) {
	db := s.db.WithContext(ctx).Model(&customerModel{})
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		db = db.Where(`LOWER(first_name) LIKE LOWER(?)
			OR LOWER(last_name) LIKE LOWER(?)
			OR LOWER(email) LIKE LOWER(?)
			OR phone LIKE ?
			OR passport_number LIKE ?`,
			pattern, pattern, pattern, pattern, pattern)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	var models []customerModel
	if err := db.Order("last_name ASC, first_name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Customer, len(models))
	for i, m := range models {
		out[i] = *toDomainCustomer(m)
	}
	return out, nil
}

func (s *CustomerStore) CountActiveBookings(ctx context.Context, customerID int64) (int64, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&bookingModel{}).
		Where("customer_id = ?", customerID).
		Where("status IN ?", statusStrings(domain.ActiveBookingStatuses)).
		Count(&cnt).Error
	return cnt, err
}

func (s *CustomerStore) CountActiveServiceBookings(ctx context.Context, customerID int64) (int64, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&serviceBookingModel{}).
		Where("customer_id = ?", customerID).
		Where("status IN ?", statusStrings(domain.BlockingServiceStatuses)).
		Count(&cnt).Error
	return cnt, err
}

func (s *CustomerStore) ListBookings(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	var models []bookingModel
	err := s.db.WithContext(ctx).
		Preload("Room").
		Preload("Room.RoomType").
		Where("customer_id = ?", customerID).
		Order("check_in_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, len(models))
	for i, m := range models {
		out[i] = *toDomainBooking(m)
	}
	return out, nil
}

func (s *CustomerStore) ListServiceBookings(ctx context.Context, customerID int64) ([]domain.ServiceBooking, error) {
	var models []serviceBookingModel
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("customer_id = ?", customerID).
		Order("start_time DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ServiceBooking, len(models))
	for i, m := range models {
		out[i] = *toDomainServiceBooking(m)
	}
	return out, nil
}

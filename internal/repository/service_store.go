package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/modules/services"
)

// ServiceStore backs the service catalog and appointment book with gorm.
type ServiceStore struct {
	db *gorm.DB
}

func NewServiceStore(db *gorm.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

func (s *ServiceStore) InTx(ctx context.Context, fn func(tx services.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ServiceStore{db: tx})
	})
}

func (s *ServiceStore) CreateCategory(ctx context.Context, c *domain.ServiceCategory) error {
	m := toCategoryModel(c)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*c = *toDomainCategory(m)
	return nil
}

func (s *ServiceStore) GetCategory(ctx context.Context, id int64) (*domain.ServiceCategory, error) {
	var m serviceCategoryModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainCategory(m), nil
}

func (s *ServiceStore) UpdateCategory(ctx context.Context, c *domain.ServiceCategory) error {
	m := toCategoryModel(c)
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	c.UpdatedAt = m.UpdatedAt
	return nil
}

func (s *ServiceStore) DeleteCategory(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Delete(&serviceCategoryModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ServiceStore) ListCategories(ctx context.Context, activeOnly bool) ([]domain.ServiceCategory, error) {
	db := s.db.WithContext(ctx).Model(&serviceCategoryModel{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var models []serviceCategoryModel
	if err := db.Order("sort_order ASC, name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ServiceCategory, len(models))
	for i, m := range models {
		out[i] = *toDomainCategory(m)
	}
	return out, nil
}

func (s *ServiceStore) CountServicesInCategory(ctx context.Context, categoryID int64) (int64, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&serviceModel{}).
		Where("category_id = ?", categoryID).
		Count(&cnt).Error
	return cnt, err
}

func (s *ServiceStore) CreateService(ctx context.Context, svc *domain.Service) error {
	m := toServiceModel(svc)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*svc = *toDomainService(m)
	return nil
}

func (s *ServiceStore) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	err := s.db.WithContext(ctx).Preload("Category").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return toDomainService(m), nil
}

func (s *ServiceStore) UpdateService(ctx context.Context, svc *domain.Service) error {
	m := toServiceModel(svc)
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	svc.UpdatedAt = m.UpdatedAt
	return nil
}

func (s *ServiceStore) DeleteService(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Delete(&serviceModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ServiceStore) ListServices(ctx context.Context, q services.ServiceListQuery) ([]domain.Service, error) {
	db := s.db.WithContext(ctx).Model(&serviceModel{}).Preload("Category")
	if q.CategoryID > 0 {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	if q.Status != "" {
		db = db.Where("status = ?", string(q.Status))
	}
	if q.FeaturedOnly {
		db = db.Where("is_featured = ?", true)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		db = db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	var models []serviceModel
	if err := db.Order("sort_order ASC, name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Service, len(models))
	for i, m := range models {
		out[i] = *toDomainService(m)
	}
	return out, nil
}

func (s *ServiceStore) CountServices(ctx context.Context, status domain.ServiceStatus) (int64, error) {
	db := s.db.WithContext(ctx).Model(&serviceModel{})
	if status != "" {
		db = db.Where("status = ?", string(status))
	}
	var cnt int64
	err := db.Count(&cnt).Error
	return cnt, err
}

func (s *ServiceStore) CountBookingsForService(ctx context.Context, serviceID int64) (int64, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&serviceBookingModel{}).
		Where("service_id = ?", serviceID).
		Count(&cnt).Error
	return cnt, err
}

func (s *ServiceStore) CreateServiceBooking(ctx context.Context, b *domain.ServiceBooking) error {
	m := toServiceBookingModel(b)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainServiceBooking(m)
	return nil
}

func (s *ServiceStore) GetServiceBooking(ctx context.Context, id int64) (*domain.ServiceBooking, error) {
	var m serviceBookingModel
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return toDomainServiceBooking(m), nil
}

func (s *ServiceStore) UpdateServiceBooking(ctx context.Context, b *domain.ServiceBooking) error {
	m := toServiceBookingModel(b)
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	b.UpdatedAt = m.UpdatedAt
	return nil
}

func (s *ServiceStore) DeleteServiceBooking(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Delete(&serviceBookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ServiceStore) applyBookingQuery(db *gorm.DB, q services.BookingListQuery) *gorm.DB {
	if q.Date != nil {
		db = db.Where("service_bookings.booking_date = ?", *q.Date)
	}
	if len(q.Statuses) > 0 {
		db = db.Where("service_bookings.status IN ?", statusStrings(q.Statuses))
	}
	if q.ServiceID > 0 {
		db = db.Where("service_bookings.service_id = ?", q.ServiceID)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		db = db.
			Joins("LEFT JOIN customers ON customers.id = service_bookings.customer_id").
			Where(`LOWER(customers.first_name) LIKE LOWER(?)
				OR LOWER(customers.last_name) LIKE LOWER(?)
				OR customers.phone LIKE ?`,
				pattern, pattern, pattern)
	}
	return db
}

func (s *ServiceStore) ListServiceBookings(ctx context.Context, q services.BookingListQuery) ([]domain.ServiceBooking, error) {
	db := s.applyBookingQuery(s.db.WithContext(ctx).Model(&serviceBookingModel{}), q).
		Preload("Customer").
		Preload("Service")
	if q.OrderByRecent {
		db = db.Order("service_bookings.created_at DESC")
	} else {
		db = db.Order("service_bookings.start_time ASC")
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	var models []serviceBookingModel
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ServiceBooking, len(models))
	for i, m := range models {
		out[i] = *toDomainServiceBooking(m)
	}
	return out, nil
}

func (s *ServiceStore) CountServiceBookings(ctx context.Context, q services.BookingListQuery) (int64, error) {
	var cnt int64
	db := s.applyBookingQuery(s.db.WithContext(ctx).Model(&serviceBookingModel{}), q)
	err := db.Count(&cnt).Error
	return cnt, err
}

func (s *ServiceStore) ServiceBookingStatusCounts(ctx context.Context) (map[domain.ServiceBookingStatus]int64, error) {
	var rows []struct {
		Status string
		Cnt    int64
	}
	err := s.db.WithContext(ctx).Model(&serviceBookingModel{}).
		Select("status, COUNT(1) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.ServiceBookingStatus]int64, len(rows))
	for _, r := range rows {
		out[domain.ServiceBookingStatus(r.Status)] = r.Cnt
	}
	return out, nil
}

func (s *ServiceStore) OverlappingServiceBookings(ctx context.Context, serviceID int64, date, start, end time.Time, excludeID int64) ([]domain.ServiceBooking, error) {
	db := s.db.WithContext(ctx).
		Preload("Customer").
		Where("service_id = ?", serviceID).
		Where("booking_date = ?", date).
		Where("status IN ?", statusStrings(domain.BlockingServiceStatuses)).
		Where("start_time < ? AND end_time > ?", end, start).
		Order("start_time ASC")
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}

	var models []serviceBookingModel
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ServiceBooking, len(models))
	for i, m := range models {
		out[i] = *toDomainServiceBooking(m)
	}
	return out, nil
}

func (s *ServiceStore) UpcomingServiceBookings(ctx context.Context, from time.Time, limit int) ([]domain.ServiceBooking, error) {
	db := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where("start_time >= ?", from).
		Where("status IN ?", statusStrings(domain.BlockingServiceStatuses)).
		Order("start_time ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var models []serviceBookingModel
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ServiceBooking, len(models))
	for i, m := range models {
		out[i] = *toDomainServiceBooking(m)
	}
	return out, nil
}

func (s *ServiceStore) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var m customerModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainCustomer(m), nil
}

package repository

import (
	"time"

	"gorm.io/datatypes"

	"hoteldesk/internal/domain"
)

type roomTypeModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name"`
	Description   string    `gorm:"column:description"`
	PricePerNight float64   `gorm:"column:price_per_night"`
	Capacity      int       `gorm:"column:capacity"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomTypeModel) TableName() string { return "room_types" }

type roomModel struct {
	ID         int64          `gorm:"column:id;primaryKey"`
	RoomNumber string         `gorm:"column:room_number;uniqueIndex"`
	RoomTypeID int64          `gorm:"column:room_type_id;index"`
	Status     string         `gorm:"column:status;index"`
	Floor      int            `gorm:"column:floor"`
	Amenities  datatypes.JSON `gorm:"column:amenities"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`

	RoomType *roomTypeModel `gorm:"foreignKey:RoomTypeID"`
}

func (roomModel) TableName() string { return "rooms" }

type customerModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	FirstName      string    `gorm:"column:first_name"`
	LastName       string    `gorm:"column:last_name"`
	Email          string    `gorm:"column:email;index"`
	Phone          string    `gorm:"column:phone"`
	PassportNumber string    `gorm:"column:passport_number"`
	Birthday       time.Time `gorm:"column:birthday"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (customerModel) TableName() string { return "customers" }

type bookingModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	CustomerID      int64     `gorm:"column:customer_id;index"`
	RoomID          int64     `gorm:"column:room_id;index:idx_bookings_room_dates"`
	CheckInDate     time.Time `gorm:"column:check_in_date;index:idx_bookings_room_dates"`
	CheckOutDate    time.Time `gorm:"column:check_out_date"`
	Status          string    `gorm:"column:status;index"`
	TotalPrice      float64   `gorm:"column:total_price"`
	SpecialRequests string    `gorm:"column:special_requests"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`

	Customer *customerModel `gorm:"foreignKey:CustomerID"`
	Room     *roomModel     `gorm:"foreignKey:RoomID"`
}

func (bookingModel) TableName() string { return "bookings" }

type serviceCategoryModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active"`
	SortOrder   int       `gorm:"column:sort_order"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (serviceCategoryModel) TableName() string { return "service_categories" }

type serviceModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Name             string    `gorm:"column:name"`
	CategoryID       int64     `gorm:"column:category_id;index"`
	Description      string    `gorm:"column:description"`
	ShortDescription string    `gorm:"column:short_description"`
	Price            float64   `gorm:"column:price"`
	DurationMinutes  int       `gorm:"column:duration_minutes"`
	MaxCapacity      int       `gorm:"column:max_capacity"`
	MinBookingHours  int       `gorm:"column:min_booking_hours"`
	Status           string    `gorm:"column:status;index"`
	IsFeatured       bool      `gorm:"column:is_featured"`
	SortOrder        int       `gorm:"column:sort_order"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`

	Category *serviceCategoryModel `gorm:"foreignKey:CategoryID"`
}

func (serviceModel) TableName() string { return "services" }

type serviceBookingModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	CustomerID      int64     `gorm:"column:customer_id;index"`
	ServiceID       int64     `gorm:"column:service_id;index:idx_service_bookings_slot"`
	BookingDate     time.Time `gorm:"column:booking_date;index:idx_service_bookings_slot"`
	StartTime       time.Time `gorm:"column:start_time"`
	EndTime         time.Time `gorm:"column:end_time"`
	Participants    int       `gorm:"column:participants"`
	Status          string    `gorm:"column:status;index"`
	SpecialRequests string    `gorm:"column:special_requests"`
	TotalPrice      float64   `gorm:"column:total_price"`
	Notes           string    `gorm:"column:notes"`
	CreatedBy       int64     `gorm:"column:created_by"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`

	Customer *customerModel `gorm:"foreignKey:CustomerID"`
	Service  *serviceModel  `gorm:"foreignKey:ServiceID"`
}

func (serviceBookingModel) TableName() string { return "service_bookings" }

type paymentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;index"`
	Amount    float64   `gorm:"column:amount"`
	Method    string    `gorm:"column:method"`
	Status    string    `gorm:"column:status"`
	PaidAt    time.Time `gorm:"column:paid_at"`
}

func (paymentModel) TableName() string { return "payments" }

// AllModels feeds AutoMigrate.
func AllModels() []any {
	return []any{
		&roomTypeModel{},
		&roomModel{},
		&customerModel{},
		&bookingModel{},
		&serviceCategoryModel{},
		&serviceModel{},
		&serviceBookingModel{},
		&paymentModel{},
	}
}

func toDomainRoomType(m roomTypeModel) *domain.RoomType {
	return &domain.RoomType{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		PricePerNight: m.PricePerNight,
		Capacity:      m.Capacity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toRoomTypeModel(rt *domain.RoomType) roomTypeModel {
	return roomTypeModel{
		ID:            rt.ID,
		Name:          rt.Name,
		Description:   rt.Description,
		PricePerNight: rt.PricePerNight,
		Capacity:      rt.Capacity,
		CreatedAt:     rt.CreatedAt,
		UpdatedAt:     rt.UpdatedAt,
	}
}

func toDomainRoom(m roomModel) *domain.Room {
	r := &domain.Room{
		ID:         m.ID,
		RoomNumber: m.RoomNumber,
		RoomTypeID: m.RoomTypeID,
		Status:     domain.RoomStatus(m.Status),
		Floor:      m.Floor,
		Amenities:  m.Amenities,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.RoomType != nil {
		r.RoomType = toDomainRoomType(*m.RoomType)
	}
	return r
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:         r.ID,
		RoomNumber: r.RoomNumber,
		RoomTypeID: r.RoomTypeID,
		Status:     string(r.Status),
		Floor:      r.Floor,
		Amenities:  r.Amenities,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toDomainCustomer(m customerModel) *domain.Customer {
	return &domain.Customer{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		PassportNumber: m.PassportNumber,
		Birthday:       m.Birthday,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toCustomerModel(c *domain.Customer) customerModel {
	return customerModel{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		PassportNumber: c.PassportNumber,
		Birthday:       c.Birthday,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		RoomID:          m.RoomID,
		CheckInDate:     m.CheckInDate,
		CheckOutDate:    m.CheckOutDate,
		Status:          domain.BookingStatus(m.Status),
		TotalPrice:      m.TotalPrice,
		SpecialRequests: m.SpecialRequests,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Customer != nil {
		b.Customer = toDomainCustomer(*m.Customer)
	}
	if m.Room != nil {
		b.Room = toDomainRoom(*m.Room)
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		RoomID:          b.RoomID,
		CheckInDate:     b.CheckInDate,
		CheckOutDate:    b.CheckOutDate,
		Status:          string(b.Status),
		TotalPrice:      b.TotalPrice,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toDomainCategory(m serviceCategoryModel) *domain.ServiceCategory {
	return &domain.ServiceCategory{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		SortOrder:   m.SortOrder,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toCategoryModel(c *domain.ServiceCategory) serviceCategoryModel {
	return serviceCategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toDomainService(m serviceModel) *domain.Service {
	s := &domain.Service{
		ID:               m.ID,
		Name:             m.Name,
		CategoryID:       m.CategoryID,
		Description:      m.Description,
		ShortDescription: m.ShortDescription,
		Price:            m.Price,
		DurationMinutes:  m.DurationMinutes,
		MaxCapacity:      m.MaxCapacity,
		MinBookingHours:  m.MinBookingHours,
		Status:           domain.ServiceStatus(m.Status),
		IsFeatured:       m.IsFeatured,
		SortOrder:        m.SortOrder,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Category != nil {
		s.Category = toDomainCategory(*m.Category)
	}
	return s
}

func toServiceModel(s *domain.Service) serviceModel {
	return serviceModel{
		ID:               s.ID,
		Name:             s.Name,
		CategoryID:       s.CategoryID,
		Description:      s.Description,
		ShortDescription: s.ShortDescription,
		Price:            s.Price,
		DurationMinutes:  s.DurationMinutes,
		MaxCapacity:      s.MaxCapacity,
		MinBookingHours:  s.MinBookingHours,
		Status:           string(s.Status),
		IsFeatured:       s.IsFeatured,
		SortOrder:        s.SortOrder,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func toDomainServiceBooking(m serviceBookingModel) *domain.ServiceBooking {
	b := &domain.ServiceBooking{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		ServiceID:       m.ServiceID,
		BookingDate:     m.BookingDate,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		Participants:    m.Participants,
		Status:          domain.ServiceBookingStatus(m.Status),
		SpecialRequests: m.SpecialRequests,
		TotalPrice:      m.TotalPrice,
		Notes:           m.Notes,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Customer != nil {
		b.Customer = toDomainCustomer(*m.Customer)
	}
	if m.Service != nil {
		b.Service = toDomainService(*m.Service)
	}
	return b
}

func toServiceBookingModel(b *domain.ServiceBooking) serviceBookingModel {
	return serviceBookingModel{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Participants:    b.Participants,
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		TotalPrice:      b.TotalPrice,
		Notes:           b.Notes,
		CreatedBy:       b.CreatedBy,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toDomainPayment(m paymentModel) domain.Payment {
	return domain.Payment{
		ID:        m.ID,
		BookingID: m.BookingID,
		Amount:    m.Amount,
		Method:    domain.PaymentMethod(m.Method),
		Status:    domain.PaymentStatus(m.Status),
		PaidAt:    m.PaidAt,
	}
}

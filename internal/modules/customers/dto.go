package customers

import (
	"time"

	"hoteldesk/internal/domain"
)

type CustomerRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	PassportNumber string `json:"passport_number" binding:"required"`
	Birthday       string `json:"birthday" binding:"required"` // 2006-01-02
}

func (r CustomerRequest) toDomain() (domain.Customer, error) {
	birthday, err := time.Parse("2006-01-02", r.Birthday)
	if err != nil {
		return domain.Customer{}, err
	}
	return domain.Customer{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		PassportNumber: r.PassportNumber,
		Birthday:       birthday,
	}, nil
}

type ListQuery struct {
	Search string
	Limit  int
	Offset int
}

// BookingsOverview groups everything booked for one customer.
type BookingsOverview struct {
	Customer        *domain.Customer        `json:"customer"`
	RoomBookings    []domain.Booking        `json:"room_bookings"`
	ServiceBookings []domain.ServiceBooking `json:"service_bookings"`
}

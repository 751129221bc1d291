package booking

import (
	"errors"
	"time"

	"hoteldesk/internal/domain"
)

// CustomerRef is the tagged variant at the booking boundary: either an
// existing customer's ID or a full profile to be created with the booking.
type CustomerRef struct {
	ExistingID int64
	New        *domain.Customer
}

type NewCustomerRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	PassportNumber string `json:"passport_number" binding:"required"`
	Birthday       string `json:"birthday" binding:"required"` // 2006-01-02
}

type CustomerRefRequest struct {
	ExistingID int64               `json:"existing_id,omitempty"`
	New        *NewCustomerRequest `json:"new,omitempty"`
}

type CreateBookingRequest struct {
	Customer        CustomerRefRequest `json:"customer" binding:"required"`
	RoomID          int64              `json:"room_id" binding:"required"`
	CheckInDate     string             `json:"check_in_date" binding:"required"`  // 2006-01-02
	CheckOutDate    string             `json:"check_out_date" binding:"required"` // 2006-01-02
	SpecialRequests string             `json:"special_requests"`
}

type UpdateBookingRequest struct {
	RoomID          int64  `json:"room_id" binding:"required"`
	CheckInDate     string `json:"check_in_date" binding:"required"`
	CheckOutDate    string `json:"check_out_date" binding:"required"`
	SpecialRequests string `json:"special_requests"`
}

type TransitionRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

type CreateBookingInput struct {
	Customer        CustomerRef
	RoomID          int64
	CheckIn         time.Time
	CheckOut        time.Time
	SpecialRequests string
}

type UpdateBookingInput struct {
	RoomID          int64
	CheckIn         time.Time
	CheckOut        time.Time
	SpecialRequests string
}

// RoomFilter narrows the availability search.
type RoomFilter struct {
	RoomTypeID  int64
	Floor       int
	MinCapacity int
}

// ListQuery mirrors the list-view filters of the back office: status, a date
// preset over check-in/check-out, and free-text search over customer name,
// phone and room number.
type ListQuery struct {
	Statuses      []domain.BookingStatus
	CheckInOn     *time.Time
	CheckOutOn    *time.Time
	CheckInFrom   *time.Time
	CheckInTo     *time.Time
	Search        string
	OrderByRecent bool
	Limit         int
	Offset        int
}

// Conflict identifies a booking that blocks a requested interval.
type Conflict struct {
	BookingID    int64                `json:"booking_id"`
	CustomerName string               `json:"customer_name"`
	Status       domain.BookingStatus `json:"status"`
	CheckInDate  time.Time            `json:"check_in_date"`
	CheckOutDate time.Time            `json:"check_out_date"`
}

type DashboardStats struct {
	TotalBookings    int64                          `json:"total_bookings"`
	ActiveBookings   int64                          `json:"active_bookings"`
	TodayCheckIns    int64                          `json:"today_check_ins"`
	TodayCheckOuts   int64                          `json:"today_check_outs"`
	UpcomingCheckIns int64                          `json:"upcoming_check_ins"`
	StatusCounts     map[domain.BookingStatus]int64 `json:"status_counts"`
	RecentBookings   []domain.Booking               `json:"recent_bookings"`
	NeedsAttention   []domain.Booking               `json:"needs_attention"`
}

// GridSpan is one booking bar on the rooms-by-days occupancy grid, clamped
// to the requested window.
type GridSpan struct {
	BookingID    int64                `json:"booking_id"`
	CustomerName string               `json:"customer_name"`
	Status       domain.BookingStatus `json:"status"`
	Start        time.Time            `json:"start"`
	End          time.Time            `json:"end"`
}

type GridRow struct {
	Room  domain.Room `json:"room"`
	Spans []GridSpan  `json:"spans"`
}

type OccupancyGrid struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
	Rows  []GridRow `json:"rows"`
}

// RoomGridFilter narrows the occupancy grid and plain room listings.
type RoomGridFilter struct {
	RoomTypeID int64
	Floor      int
	Status     domain.RoomStatus
}

// IntegrityRow reports one room whose cached status flag is compared against
// the overlap-derived occupancy truth.
type IntegrityRow struct {
	RoomID         int64             `json:"room_id"`
	RoomNumber     string            `json:"room_number"`
	Flag           domain.RoomStatus `json:"flag"`
	CheckedInCount int64             `json:"checked_in_count"`
	Consistent     bool              `json:"consistent"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func (r CreateBookingRequest) toInput() (CreateBookingInput, error) {
	checkIn, err := parseDate(r.CheckInDate)
	if err != nil {
		return CreateBookingInput{}, errors.New("check_in_date must be YYYY-MM-DD")
	}
	checkOut, err := parseDate(r.CheckOutDate)
	if err != nil {
		return CreateBookingInput{}, errors.New("check_out_date must be YYYY-MM-DD")
	}

	ref := CustomerRef{ExistingID: r.Customer.ExistingID}
	if r.Customer.New != nil {
		birthday, err := parseDate(r.Customer.New.Birthday)
		if err != nil {
			return CreateBookingInput{}, errors.New("customer birthday must be YYYY-MM-DD")
		}
		ref.New = &domain.Customer{
			FirstName:      r.Customer.New.FirstName,
			LastName:       r.Customer.New.LastName,
			Email:          r.Customer.New.Email,
			Phone:          r.Customer.New.Phone,
			PassportNumber: r.Customer.New.PassportNumber,
			Birthday:       birthday,
		}
	}

	return CreateBookingInput{
		Customer:        ref,
		RoomID:          r.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

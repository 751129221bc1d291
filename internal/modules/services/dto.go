package services

import (
	"errors"
	"time"

	"hoteldesk/internal/domain"
)

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

type ServiceRequest struct {
	Name             string               `json:"name" binding:"required"`
	CategoryID       int64                `json:"category_id" binding:"required"`
	Description      string               `json:"description"`
	ShortDescription string               `json:"short_description"`
	Price            float64              `json:"price" binding:"gte=0"`
	DurationMinutes  int                  `json:"duration_minutes" binding:"required"`
	MaxCapacity      int                  `json:"max_capacity" binding:"required,gte=1"`
	MinBookingHours  int                  `json:"min_booking_hours"`
	Status           domain.ServiceStatus `json:"status"`
	IsFeatured       bool                 `json:"is_featured"`
	SortOrder        int                  `json:"sort_order"`
}

type BookingRequest struct {
	CustomerID      int64  `json:"customer_id" binding:"required"`
	ServiceID       int64  `json:"service_id" binding:"required"`
	BookingDate     string `json:"booking_date" binding:"required"` // 2006-01-02
	StartTime       string `json:"start_time" binding:"required"`   // 15:04
	Participants    int    `json:"participants" binding:"required,gte=1"`
	SpecialRequests string `json:"special_requests"`
	Notes           string `json:"notes"`
}

type TransitionRequest struct {
	Status domain.ServiceBookingStatus `json:"status" binding:"required"`
}

type BookingInput struct {
	CustomerID      int64
	ServiceID       int64
	Date            time.Time
	Start           time.Time
	Participants    int
	SpecialRequests string
	Notes           string
	CreatedBy       int64
}

// ServiceListQuery narrows the service catalog listing.
type ServiceListQuery struct {
	CategoryID   int64
	Status       domain.ServiceStatus
	FeaturedOnly bool
	Search       string
	Limit        int
	Offset       int
}

// BookingListQuery mirrors the appointment list filters: a single day, a
// status set, one service, and free-text search over customer name and phone.
type BookingListQuery struct {
	Date          *time.Time
	Statuses      []domain.ServiceBookingStatus
	ServiceID     int64
	Search        string
	OrderByRecent bool
	Limit         int
	Offset        int
}

// Conflict identifies a service booking that blocks a requested slot.
type Conflict struct {
	BookingID    int64                       `json:"booking_id"`
	CustomerName string                      `json:"customer_name"`
	Status       domain.ServiceBookingStatus `json:"status"`
	StartTime    time.Time                   `json:"start_time"`
	EndTime      time.Time                   `json:"end_time"`
}

// AvailabilityResult is the resolver's answer for one candidate slot.
type AvailabilityResult struct {
	Available bool       `json:"available"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

type DashboardStats struct {
	TotalServices    int64                                 `json:"total_services"`
	ActiveServices   int64                                 `json:"active_services"`
	TodayBookings    int64                                 `json:"today_bookings"`
	PendingBookings  int64                                 `json:"pending_bookings"`
	StatusCounts     map[domain.ServiceBookingStatus]int64 `json:"status_counts"`
	UpcomingBookings []domain.ServiceBooking               `json:"upcoming_bookings"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// combineDateTime anchors a wall-clock "15:04" value on the given date.
func combineDateTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func (r BookingRequest) toInput(createdBy int64) (BookingInput, error) {
	date, err := parseDate(r.BookingDate)
	if err != nil {
		return BookingInput{}, errors.New("booking_date must be YYYY-MM-DD")
	}
	start, err := combineDateTime(date, r.StartTime)
	if err != nil {
		return BookingInput{}, errors.New("start_time must be HH:MM")
	}

	return BookingInput{
		CustomerID:      r.CustomerID,
		ServiceID:       r.ServiceID,
		Date:            date,
		Start:           start,
		Participants:    r.Participants,
		SpecialRequests: r.SpecialRequests,
		Notes:           r.Notes,
		CreatedBy:       createdBy,
	}, nil
}

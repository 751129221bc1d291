package domain

import "time"

type ServiceStatus string

const (
	ServiceAvailable   ServiceStatus = "available"
	ServiceUnavailable ServiceStatus = "unavailable"
	ServiceSeasonal    ServiceStatus = "seasonal"
)

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceAvailable, ServiceUnavailable, ServiceSeasonal:
		return true
	}
	return false
}

// AllowedDurations are the bookable session lengths, in minutes.
var AllowedDurations = []int{30, 60, 90, 120, 180}

// AllowedLeadTimes are the valid minimum-lead-time settings, in hours.
// Zero means the service can be booked at any time.
var AllowedLeadTimes = []int{0, 1, 2, 3, 6, 12, 24, 48, 72, 168}

func ValidDuration(minutes int) bool {
	for _, d := range AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

func ValidLeadTime(hours int) bool {
	for _, h := range AllowedLeadTimes {
		if h == hours {
			return true
		}
	}
	return false
}

type ServiceCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Service struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name" validate:"required"`
	CategoryID       int64         `json:"category_id" validate:"required"`
	Description      string        `json:"description,omitempty"`
	ShortDescription string        `json:"short_description,omitempty"`
	Price            float64       `json:"price" validate:"required,gte=0"`
	DurationMinutes  int           `json:"duration_minutes"`
	MaxCapacity      int           `json:"max_capacity" validate:"required,gte=1"`
	MinBookingHours  int           `json:"min_booking_hours"`
	Status           ServiceStatus `json:"status"`
	IsFeatured       bool          `json:"is_featured"`
	SortOrder        int           `json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *ServiceCategory `json:"category,omitempty"`
}

// Duration returns the session length as a time.Duration.
func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

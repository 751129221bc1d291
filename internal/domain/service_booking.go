package domain

import "time"

type ServiceBookingStatus string

const (
	ServiceBookingPending    ServiceBookingStatus = "pending"
	ServiceBookingConfirmed  ServiceBookingStatus = "confirmed"
	ServiceBookingInProgress ServiceBookingStatus = "in_progress"
	ServiceBookingCompleted  ServiceBookingStatus = "completed"
	ServiceBookingCancelled  ServiceBookingStatus = "cancelled"
	ServiceBookingNoShow     ServiceBookingStatus = "no_show"
)

func (s ServiceBookingStatus) Valid() bool {
	switch s {
	case ServiceBookingPending, ServiceBookingConfirmed, ServiceBookingInProgress,
		ServiceBookingCompleted, ServiceBookingCancelled, ServiceBookingNoShow:
		return true
	}
	return false
}

// BlockingServiceStatuses are the statuses that keep a service slot blocked
// for the booking's [start, end) interval.
var BlockingServiceStatuses = []ServiceBookingStatus{
	ServiceBookingPending,
	ServiceBookingConfirmed,
	ServiceBookingInProgress,
}

func (s ServiceBookingStatus) Blocking() bool {
	for _, b := range BlockingServiceStatuses {
		if s == b {
			return true
		}
	}
	return false
}

var serviceBookingTransitions = map[ServiceBookingStatus][]ServiceBookingStatus{
	ServiceBookingPending:    {ServiceBookingConfirmed, ServiceBookingCancelled, ServiceBookingNoShow},
	ServiceBookingConfirmed:  {ServiceBookingInProgress, ServiceBookingCancelled, ServiceBookingNoShow},
	ServiceBookingInProgress: {ServiceBookingCompleted},
	ServiceBookingCompleted:  {},
	ServiceBookingCancelled:  {},
	ServiceBookingNoShow:     {},
}

func (s ServiceBookingStatus) CanTransitionTo(next ServiceBookingStatus) bool {
	for _, allowed := range serviceBookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceBooking holds an appointment for an ancillary service.
// BookingDate is a date-only value at midnight UTC; StartTime and EndTime are
// instants on that same date — appointments never span midnight.
type ServiceBooking struct {
	ID              int64                `json:"id"`
	CustomerID      int64                `json:"customer_id" validate:"required"`
	ServiceID       int64                `json:"service_id" validate:"required"`
	BookingDate     time.Time            `json:"booking_date" validate:"required"`
	StartTime       time.Time            `json:"start_time" validate:"required"`
	EndTime         time.Time            `json:"end_time"`
	Participants    int                  `json:"participants" validate:"required,gte=1"`
	Status          ServiceBookingStatus `json:"status"`
	SpecialRequests string               `json:"special_requests,omitempty"`
	TotalPrice      float64              `json:"total_price"`
	Notes           string               `json:"notes,omitempty"`
	CreatedBy       int64                `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty"`
	Service  *Service  `json:"service,omitempty"`
}

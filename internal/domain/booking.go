package domain

import "time"

type BookingStatus string

const (
	BookingAwaitingPayment BookingStatus = "awaiting_payment"
	BookingConfirmed       BookingStatus = "confirmed"
	BookingCheckedIn       BookingStatus = "checked_in"
	BookingCheckedOut      BookingStatus = "checked_out"
	BookingCancelled       BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingAwaitingPayment, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

// ActiveBookingStatuses are the statuses that keep a room blocked for the
// booking's [check_in, check_out) interval.
var ActiveBookingStatuses = []BookingStatus{
	BookingAwaitingPayment,
	BookingConfirmed,
	BookingCheckedIn,
}

func (s BookingStatus) Active() bool {
	for _, a := range ActiveBookingStatuses {
		if s == a {
			return true
		}
	}
	return false
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingAwaitingPayment: {BookingConfirmed, BookingCancelled},
	BookingConfirmed:       {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn:       {BookingCheckedOut},
	BookingCheckedOut:      {},
	BookingCancelled:       {},
}

// CanTransitionTo reports whether the booking state machine allows moving
// from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking check-in/check-out dates are date-only values normalized to
// midnight UTC; the stay covers the half-open range [CheckInDate, CheckOutDate).
type Booking struct {
	ID              int64         `json:"id"`
	CustomerID      int64         `json:"customer_id" validate:"required"`
	RoomID          int64         `json:"room_id" validate:"required"`
	CheckInDate     time.Time     `json:"check_in_date" validate:"required"`
	CheckOutDate    time.Time     `json:"check_out_date" validate:"required"`
	Status          BookingStatus `json:"status"`
	TotalPrice      float64       `json:"total_price"`
	SpecialRequests string        `json:"special_requests,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty"`
	Room     *Room     `json:"room,omitempty"`
}

// Nights returns the number of nights covered by the stay.
func (b Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

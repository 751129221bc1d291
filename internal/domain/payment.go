package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentCash       PaymentMethod = "cash"
	PaymentOnSite     PaymentMethod = "on_site"
)

// Payment is an inert ledger record attached to a room booking. The service
// never drives payment state; rows are recorded and listed as-is.
type Payment struct {
	ID        int64         `json:"id"`
	BookingID int64         `json:"booking_id"`
	Amount    float64       `json:"amount"`
	Method    PaymentMethod `json:"method"`
	Status    PaymentStatus `json:"status"`
	PaidAt    time.Time     `json:"paid_at"`
}

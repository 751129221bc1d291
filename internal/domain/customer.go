package domain

import "time"

const (
	MinCustomerAge = 18
	MaxCustomerAge = 120
)

type Customer struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name" validate:"required"`
	LastName       string    `json:"last_name" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	Phone          string    `json:"phone" validate:"required,min=5,max=20"`
	PassportNumber string    `json:"passport_number" validate:"required"`
	Birthday       time.Time `json:"birthday" validate:"required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// AgeAt returns the customer's age in whole years at the given moment.
func (c Customer) AgeAt(now time.Time) int {
	age := now.Year() - c.Birthday.Year()
	if now.Month() < c.Birthday.Month() ||
		(now.Month() == c.Birthday.Month() && now.Day() < c.Birthday.Day()) {
		age--
	}
	return age
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// BillingCustomer maps a user to their customer record at a payment processor.
type BillingCustomer struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Provider   string
	CustomerId string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

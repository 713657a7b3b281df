package model

import (
	"time"

	"github.com/google/uuid"
)

type BillingCustomer struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_billing_customer_user_provider"`
	Provider   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_billing_customer_user_provider"`
	CustomerId string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (BillingCustomer) TableName() string {
	return "billing_customers"
}

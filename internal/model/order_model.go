package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Order struct {
	Id                     uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId         *uuid.UUID     `gorm:"type:uuid;index"`
	UserId                 uuid.UUID      `gorm:"type:uuid;not null;index"`
	Amount                 float64        `gorm:"type:decimal(10,2);not null"`
	Currency               string         `gorm:"type:varchar(10);not null;default:'usd'"`
	Status                 string         `gorm:"type:varchar(50);not null;index"`
	PaymentStatus          string         `gorm:"type:varchar(50);not null"`
	InvoiceStatus          string         `gorm:"type:varchar(50)"`
	Product                datatypes.JSON `gorm:"type:jsonb"`
	ProviderPaymentId      *string        `gorm:"type:varchar(255)"`
	ProviderInvoiceId      *string        `gorm:"type:varchar(255)"`
	ProviderSubscriptionId *string        `gorm:"type:varchar(255)"`
	CheckoutSessionId      *string        `gorm:"type:varchar(255);index"`
	ReceiptURL             string         `gorm:"type:text"`
	CreatedAt              time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt              time.Time      `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Payment statuses as reported by the processor.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
)

// Order is a payment record written by the billing webhooks.
type Order struct {
	Id                     uuid.UUID
	SubscriptionId         *uuid.UUID
	UserId                 uuid.UUID
	Amount                 float64
	Currency               string
	Status                 OrderStatus
	PaymentStatus          string
	InvoiceStatus          string
	Product                map[string]interface{}
	ProviderPaymentId      *string
	ProviderInvoiceId      *string
	ProviderSubscriptionId *string
	CheckoutSessionId      *string
	ReceiptURL             string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

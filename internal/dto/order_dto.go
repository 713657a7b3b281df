package dto

import (
	"time"

	"github.com/google/uuid"
)

type OrderQuery struct {
	Status         string `query:"status"`
	SubscriptionId string `query:"subscription_id"`
	Limit          int    `query:"limit"`
}

type OrderResponse struct {
	Id                     uuid.UUID              `json:"id"`
	SubscriptionId         *uuid.UUID             `json:"subscription_id,omitempty"`
	Amount                 float64                `json:"amount"`
	Currency               string                 `json:"currency"`
	Status                 string                 `json:"status"`
	PaymentStatus          string                 `json:"payment_status"`
	InvoiceStatus          string                 `json:"invoice_status,omitempty"`
	Product                map[string]interface{} `json:"product,omitempty"`
	ProviderSubscriptionId *string                `json:"provider_subscription_id,omitempty"`
	ReceiptURL             string                 `json:"receipt_url,omitempty"`
	CreatedAt              time.Time              `json:"created_at"`
}

// AwaitOrderResponse is the settled outcome of polling an order after checkout.
type AwaitOrderResponse struct {
	Outcome  string         `json:"outcome"`
	Attempts int            `json:"attempts"`
	Order    *OrderResponse `json:"order"`
}

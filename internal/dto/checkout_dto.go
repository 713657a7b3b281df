package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// CreateCheckoutRequest is validated by the checkout service so that a bad
// request never reaches the database or the payment processor.
type CreateCheckoutRequest struct {
	Metal            string      `json:"metal"`
	TargetWeight     float64     `json:"target_weight"`
	TargetUnit       string      `json:"target_unit"`
	InvestmentAmount json.Number `json:"investment_amount"`
}

type CheckoutSessionResponse struct {
	SubscriptionId uuid.UUID `json:"subscription_id"`
	SessionId      string    `json:"session_id"`
	Mode           string    `json:"mode"`
	ClientSecret   string    `json:"client_secret,omitempty"`
	RedirectURL    string    `json:"redirect_url,omitempty"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWithdrawalRequest struct {
	SubscriptionId  uuid.UUID `json:"subscription_id" validate:"required"`
	RequestedWeight float64   `json:"requested_weight" validate:"required,gt=0"`
	RequestedUnit   string    `json:"requested_unit" validate:"required,oneof=g oz"`
	Notes           string    `json:"notes" validate:"omitempty,max=4000"`
}

type WithdrawalRequestResponse struct {
	Id              uuid.UUID  `json:"id"`
	SubscriptionId  uuid.UUID  `json:"subscription_id"`
	UserId          uuid.UUID  `json:"user_id"`
	Metal           string     `json:"metal"`
	RequestedWeight float64    `json:"requested_weight"`
	RequestedUnit   string     `json:"requested_unit"`
	EstimatedValue  float64    `json:"estimated_value"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
}

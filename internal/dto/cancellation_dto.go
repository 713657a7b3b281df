package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCancellationRequest struct {
	SubscriptionId uuid.UUID  `json:"subscription_id" validate:"required"`
	Reason         string     `json:"reason" validate:"omitempty,max=500"`
	Details        string     `json:"details" validate:"omitempty,max=4000"`
	PreferredDate  *time.Time `json:"preferred_cancellation_date,omitempty"`
}

type CancellationRequestResponse struct {
	Id              uuid.UUID  `json:"id"`
	SubscriptionId  uuid.UUID  `json:"subscription_id"`
	UserId          uuid.UUID  `json:"user_id"`
	Reason          string     `json:"reason,omitempty"`
	Details         string     `json:"details,omitempty"`
	PreferredDate   *time.Time `json:"preferred_cancellation_date,omitempty"`
	Status          string     `json:"status"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
}

// UpdateRequestStatusRequest is the admin review payload for both request kinds.
type UpdateRequestStatusRequest struct {
	Status          string  `json:"status" validate:"required"`
	ResolutionNotes *string `json:"resolution_notes,omitempty" validate:"omitempty,max=4000"`
}

type RequestListQuery struct {
	Status         string `query:"status"`
	SubscriptionId string `query:"subscription_id"`
}

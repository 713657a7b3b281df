package entity

import (
	"time"

	"pharaohvault-be/pkg/lifecycle"

	"github.com/google/uuid"
)

// CancellationRequest is a subscriber's request to stop a subscription, reviewed by an admin.
type CancellationRequest struct {
	Id              uuid.UUID
	SubscriptionId  uuid.UUID
	UserId          uuid.UUID
	Reason          string
	Details         string
	PreferredDate   *time.Time
	Status          lifecycle.CancellationStatus
	ResolutionNotes string
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

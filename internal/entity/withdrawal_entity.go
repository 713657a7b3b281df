package entity

import (
	"time"

	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/metal"

	"github.com/google/uuid"
)

// WithdrawalRequest asks for physical delivery of accumulated metal.
type WithdrawalRequest struct {
	Id              uuid.UUID
	SubscriptionId  uuid.UUID
	UserId          uuid.UUID
	Metal           metal.Metal
	RequestedWeight float64
	RequestedUnit   metal.Unit
	EstimatedValue  float64
	Notes           string
	Status          lifecycle.WithdrawalStatus
	ResolutionNotes string
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

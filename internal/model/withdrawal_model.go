package model

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalRequest struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Metal           string    `gorm:"type:varchar(20);not null"`
	RequestedWeight float64   `gorm:"type:decimal(12,4);not null"`
	RequestedUnit   string    `gorm:"type:varchar(10);not null"`
	EstimatedValue  float64   `gorm:"type:decimal(14,2);not null;default:0"`
	Notes           string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(50);not null;default:'pending';index"`
	ResolutionNotes string    `gorm:"type:text"`
	ProcessedAt     *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

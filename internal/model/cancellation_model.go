package model

import (
	"time"

	"github.com/google/uuid"
)

type CancellationRequest struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Reason          string     `gorm:"type:text"`
	Details         string     `gorm:"type:text"`
	PreferredDate   *time.Time `gorm:"type:date"`
	Status          string     `gorm:"type:varchar(50);not null;default:'pending';index"`
	ResolutionNotes string     `gorm:"type:text"`
	ProcessedAt     *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (CancellationRequest) TableName() string {
	return "cancellation_requests"
}

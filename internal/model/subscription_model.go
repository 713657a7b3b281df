package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id                       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriptions_user_idempotency"`
	Metal                    string     `gorm:"type:varchar(20);not null"`
	PlanName                 string     `gorm:"type:varchar(255);not null"`
	TargetWeight             float64    `gorm:"type:decimal(12,4);not null"`
	TargetUnit               string     `gorm:"type:varchar(10);not null"`
	MonthlyInvestment        float64    `gorm:"type:decimal(10,2);not null"`
	Quantity                 int        `gorm:"not null;default:1"`
	AccumulatedValue         float64    `gorm:"type:decimal(14,2);not null;default:0"`
	AccumulatedWeight        float64    `gorm:"type:decimal(12,4);not null;default:0"`
	Status                   string     `gorm:"type:varchar(50);not null;index"`
	CurrentPeriodEnd         *time.Time `gorm:"index"`
	PendingMonthlyInvestment *float64   `gorm:"type:decimal(10,2)"`
	PendingInvestmentFrom    *time.Time
	Provider                 string    `gorm:"type:varchar(50);not null"`
	ProviderCustomerId       string    `gorm:"type:varchar(255)"`
	ProviderSubscriptionId   *string   `gorm:"type:varchar(255);index"`
	CheckoutSessionId        *string   `gorm:"type:varchar(255)"`
	CheckoutClientSecret     *string   `gorm:"type:text"`
	CheckoutRedirectURL      *string   `gorm:"type:text"`
	CheckoutState            string    `gorm:"type:varchar(50);not null;default:'intent_recorded'"`
	IdempotencyKey           *string   `gorm:"type:varchar(255);uniqueIndex:idx_subscriptions_user_idempotency"`
	CreatedAt                time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt                time.Time `gorm:"autoUpdateTime"`

	User User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

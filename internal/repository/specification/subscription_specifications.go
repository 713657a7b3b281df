package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type BySubscription struct {
	SubscriptionID uuid.UUID
}

func (s BySubscription) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subscription_id = ?", s.SubscriptionID)
}

type BySubscriptions struct {
	SubscriptionIDs []uuid.UUID
}

func (s BySubscriptions) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subscription_id IN ?", s.SubscriptionIDs)
}

type ByIdempotencyKey struct {
	Key string
}

func (s ByIdempotencyKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("idempotency_key = ?", s.Key)
}

type ByProvider struct {
	Provider string
}

func (s ByProvider) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider = ?", s.Provider)
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
}

type UserStatsResponse struct {
	TotalInvested     float64 `json:"total_invested"`
	MonthlyInvested   float64 `json:"monthly_invested"`
	SubscriptionCount int     `json:"subscription_count"`
}

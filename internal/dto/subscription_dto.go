package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionListQuery struct {
	UserId string `query:"user_id"`
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type EligibilityResponse struct {
	CanCancel   bool `json:"can_cancel"`
	CanModify   bool `json:"can_modify"`
	CanWithdraw bool `json:"can_withdraw"`
}

type ProjectionResponse struct {
	TradeUnit         string  `json:"trade_unit"`
	TargetWeight      float64 `json:"target_weight"`
	AccumulatedWeight float64 `json:"accumulated_weight"`
	TargetValueUSD    float64 `json:"target_value_usd"`
	Progress          float64 `json:"progress"`
}

type SubscriptionResponse struct {
	Id                       uuid.UUID           `json:"id"`
	UserId                   uuid.UUID           `json:"user_id"`
	Metal                    string              `json:"metal"`
	PlanName                 string              `json:"plan_name"`
	TargetWeight             float64             `json:"target_weight"`
	TargetUnit               string              `json:"target_unit"`
	MonthlyInvestment        float64             `json:"monthly_investment"`
	Quantity                 int                 `json:"quantity"`
	AccumulatedValue         float64             `json:"accumulated_value"`
	AccumulatedWeight        float64             `json:"accumulated_weight"`
	Status                   string              `json:"status"`
	StatusLabel              string              `json:"status_label"`
	StatusTone               string              `json:"status_tone"`
	CurrentPeriodEnd         *time.Time          `json:"current_period_end,omitempty"`
	PendingMonthlyInvestment *float64            `json:"pending_monthly_investment,omitempty"`
	PendingInvestmentFrom    *time.Time          `json:"pending_investment_from,omitempty"`
	CancellationRequestId    *uuid.UUID          `json:"cancellation_request_id,omitempty"`
	WithdrawalRequestId      *uuid.UUID          `json:"withdrawal_request_id,omitempty"`
	Eligibility              EligibilityResponse `json:"eligibility"`
	Projection               *ProjectionResponse `json:"projection,omitempty"`
	CreatedAt                time.Time           `json:"created_at"`
	UpdatedAt                time.Time           `json:"updated_at"`
}

// AdminUpdateSubscriptionRequest only carries the fields an admin may correct.
type AdminUpdateSubscriptionRequest struct {
	Status            *string    `json:"status,omitempty"`
	AccumulatedValue  *float64   `json:"accumulated_value,omitempty" validate:"omitempty,gte=0"`
	AccumulatedWeight *float64   `json:"accumulated_weight,omitempty" validate:"omitempty,gte=0"`
	CurrentPeriodEnd  *time.Time `json:"current_period_end,omitempty"`
}

type ModifyInvestmentRequest struct {
	MonthlyInvestment float64 `json:"monthly_investment" validate:"required,gt=0"`
}

type ModifyInvestmentResponse struct {
	SubscriptionId           uuid.UUID  `json:"subscription_id"`
	MonthlyInvestment        float64    `json:"monthly_investment"`
	PendingMonthlyInvestment float64    `json:"pending_monthly_investment"`
	EffectiveFrom            *time.Time `json:"effective_from,omitempty"`
}

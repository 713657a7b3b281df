package entity

import (
	"time"

	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/metal"

	"github.com/google/uuid"
)

// CheckoutState marks how far the checkout saga got for a pending subscription.
type CheckoutState string

const (
	CheckoutStateIntentRecorded CheckoutState = "intent_recorded"
	CheckoutStateSessionCreated CheckoutState = "session_created"
	CheckoutStateSessionFailed  CheckoutState = "session_failed"
)

// CheckoutMarker is the saga progress persisted on a pending subscription.
// ClientSecret or RedirectURL is kept so a replayed request gets the same session back.
type CheckoutMarker struct {
	State        CheckoutState
	SessionId    *string
	ClientSecret *string
	RedirectURL  *string
}

type Subscription struct {
	Id                uuid.UUID
	UserId            uuid.UUID
	Metal             metal.Metal
	PlanName          string
	TargetWeight      float64
	TargetUnit        metal.Unit
	MonthlyInvestment float64
	Quantity          int
	AccumulatedValue  float64
	AccumulatedWeight float64
	Status            lifecycle.Status
	CurrentPeriodEnd  *time.Time

	// Scheduled monthly investment change, applied at the next billing cycle.
	PendingMonthlyInvestment *float64
	PendingInvestmentFrom    *time.Time

	Provider               string
	ProviderCustomerId     string
	ProviderSubscriptionId *string
	CheckoutSessionId      *string
	CheckoutClientSecret   *string
	CheckoutRedirectURL    *string
	CheckoutState          CheckoutState
	IdempotencyKey         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonthlyCommitment is the amount billed every cycle.
func (s *Subscription) MonthlyCommitment() float64 {
	return s.MonthlyInvestment * float64(s.Quantity)
}

// Snapshot returns the eligibility inputs for this subscription.
func (s *Subscription) Snapshot(openCancellation, openWithdrawal bool) lifecycle.Snapshot {
	return lifecycle.Snapshot{
		Status:            s.Status,
		Metal:             s.Metal,
		TargetUnit:        s.TargetUnit,
		TargetWeight:      s.TargetWeight,
		AccumulatedWeight: s.AccumulatedWeight,
		OpenCancellation:  openCancellation,
		OpenWithdrawal:    openWithdrawal,
	}
}

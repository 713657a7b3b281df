package payment

import (
	"context"
	"fmt"

	"pharaohvault-be/pkg/metal"
)

// Mode describes how the client completes a checkout session.
type Mode string

const (
	// ModeEmbedded sessions are mounted in-page with a client secret.
	ModeEmbedded Mode = "embedded"
	// ModeHosted sessions redirect the browser to the provider.
	ModeHosted Mode = "hosted"
)

// Metadata keys attached to every checkout session.
const (
	MetadataUserID                = "user_id"
	MetadataPendingSubscriptionID = "pending_subscription_id"
)

type CustomerRequest struct {
	UserID string
	Email  string
}

type SessionRequest struct {
	CustomerID     string
	SubscriptionID string
	UserID         string
	Email          string
	Metal          metal.Metal
	TargetWeight   float64
	TargetUnit     metal.Unit
	MonthlyAmount  int64
	IdempotencyKey string
}

type Session struct {
	ID           string
	ClientSecret string
	RedirectURL  string
	Mode         Mode
}

// Gateway is a recurring-payment processor able to open checkout sessions.
type Gateway interface {
	Name() string
	Mode() Mode
	CreateCustomer(ctx context.Context, req CustomerRequest) (string, error)
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// ProviderError is a failure reported by the payment processor.
type ProviderError struct {
	Provider string
	Type     string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Type)
}

func productName(m metal.Metal) string {
	return fmt.Sprintf("%s Plan", m.DisplayName())
}

func productDescription(req SessionRequest) string {
	return fmt.Sprintf("Monthly %s accumulation towards %g%s", req.Metal, req.TargetWeight, req.TargetUnit)
}

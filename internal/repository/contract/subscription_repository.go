package contract

import (
	"context"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/pkg/lifecycle"

	"github.com/google/uuid"
)

// InvestmentTotals is the sum of accumulated value and monthly commitment over a set of subscriptions.
type InvestmentTotals struct {
	TotalInvested   float64
	MonthlyInvested float64
}

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, subscription *entity.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Targeted column updates, used where a full Save would clobber concurrent writers.
	UpdateCheckout(ctx context.Context, id uuid.UUID, marker entity.CheckoutMarker) error
	// UpdateStatusFrom moves the row only while it is still in from; false means it changed underneath.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to lifecycle.Status) (bool, error)

	SumInvestments(ctx context.Context, specs ...specification.Specification) (*InvestmentTotals, error)
}

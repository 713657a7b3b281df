package dashboard

import (
	"context"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/lifecycle"

	"github.com/google/uuid"
)

// InvestedStatuses are the subscriptions counted towards invested totals.
var InvestedStatuses = []lifecycle.Status{
	lifecycle.StatusActive,
	lifecycle.StatusTrialing,
	lifecycle.StatusCanceling,
	lifecycle.StatusPastDue,
}

// BillingStatuses are the subscriptions shown as active plans.
var BillingStatuses = []lifecycle.Status{
	lifecycle.StatusActive,
	lifecycle.StatusTrialing,
	lifecycle.StatusCanceling,
}

func statusIn(statuses []lifecycle.Status) specification.StatusIn {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return specification.StatusIn{Statuses: out}
}

// Aggregator computes the admin dashboard figures. Nothing is cached.
type Aggregator struct {
	logger logger.ILogger
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats returns invested totals over InvestedStatuses plus user and subscription counts.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*entity.DashboardStats, error) {
	totals, err := uow.SubscriptionRepository().SumInvestments(ctx, statusIn(InvestedStatuses))
	if err != nil {
		return nil, err
	}

	userCount, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	active, err := uow.SubscriptionRepository().Count(ctx, statusIn(BillingStatuses))
	if err != nil {
		return nil, err
	}

	pending, err := uow.SubscriptionRepository().Count(ctx,
		specification.Filter("status", string(lifecycle.StatusPendingPayment)))
	if err != nil {
		return nil, err
	}

	return &entity.DashboardStats{
		TotalInvested:        totals.TotalInvested,
		MonthlyInvested:      totals.MonthlyInvested,
		UserCount:            userCount,
		ActiveSubscriptions:  active,
		PendingSubscriptions: pending,
	}, nil
}

// GetUserStats is the per-user version of GetStats. Total invested covers every
// subscription the user ever held; the monthly figure only the billing ones.
func (a *Aggregator) GetUserStats(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.UserStats, error) {
	owner := specification.UserOwnedBy{UserID: userId}

	all, err := uow.SubscriptionRepository().SumInvestments(ctx, owner)
	if err != nil {
		return nil, err
	}

	invested, err := uow.SubscriptionRepository().SumInvestments(ctx, owner, statusIn(InvestedStatuses))
	if err != nil {
		return nil, err
	}

	count, err := uow.SubscriptionRepository().Count(ctx, owner, statusIn(BillingStatuses))
	if err != nil {
		return nil, err
	}

	return &entity.UserStats{
		TotalInvested:     all.TotalInvested,
		MonthlyInvested:   invested.MonthlyInvested,
		SubscriptionCount: int(count),
	}, nil
}

// ListUsersWithSubscriptions groups every subscription under its owner,
// newest users first. Users without subscriptions are included.
func (a *Aggregator) ListUsersWithSubscriptions(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.UserSubscriptions, error) {
	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	subs, err := uow.SubscriptionRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID][]*entity.Subscription, len(users))
	for _, s := range subs {
		byUser[s.UserId] = append(byUser[s.UserId], s)
	}

	res := make([]*entity.UserSubscriptions, 0, len(users))
	for _, u := range users {
		owned := byUser[u.Id]
		if owned == nil {
			owned = []*entity.Subscription{}
		}
		res = append(res, &entity.UserSubscriptions{User: u, Subscriptions: owned})
	}

	a.logger.Debug("ADMIN", "Aggregated users with subscriptions", map[string]interface{}{
		"users":         len(users),
		"subscriptions": len(subs),
	})

	return res, nil
}

package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"pharaohvault-be/internal/config"
	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/pkg/session"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	adminEvents "pharaohvault-be/pkg/admin/events"
	"pharaohvault-be/pkg/lifecycle"

	"github.com/google/uuid"
)

type ISubscriptionService interface {
	List(ctx context.Context, sess *session.Session, query dto.SubscriptionListQuery) ([]dto.SubscriptionResponse, error)
	Get(ctx context.Context, sess *session.Session, id uuid.UUID) (*dto.SubscriptionResponse, error)
	ModifyInvestment(ctx context.Context, sess *session.Session, id uuid.UUID, req *dto.ModifyInvestmentRequest) (*dto.ModifyInvestmentResponse, error)
}

type subscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	views      *viewBuilder
	bounds     lifecycle.InvestmentBounds
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	prices IMetalPriceService,
	policy config.InvestmentPolicy,
	publisher adminEvents.Publisher,
	logger logger.ILogger,
) ISubscriptionService {
	return &subscriptionService{
		uowFactory: uowFactory,
		views:      &viewBuilder{prices: prices, logger: logger},
		bounds:     lifecycle.InvestmentBounds{Min: policy.ModifyMin, Max: policy.ModifyMax},
		publisher:  publisher,
		logger:     logger,
	}
}

// List returns the caller's subscriptions. Admins see every subscription and
// may narrow by user_id.
func (s *subscriptionService) List(ctx context.Context, sess *session.Session, query dto.SubscriptionListQuery) ([]dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	switch {
	case !sess.IsAdmin():
		specs = append(specs, specification.UserOwnedBy{UserID: sess.UserID})
	case query.UserId != "":
		userId, err := uuid.Parse(query.UserId)
		if err != nil {
			return nil, apperror.Validation("Invalid user_id")
		}
		specs = append(specs, specification.UserOwnedBy{UserID: userId})
	}

	if query.Status != "" {
		status, ok := lifecycle.ParseStatus(query.Status)
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("Unknown subscription status '%s'", query.Status))
		}
		specs = append(specs, specification.Filter("status", string(status)))
	}

	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})
	if query.Limit > 0 {
		page := query.Page
		if page < 1 {
			page = 1
		}
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: (page - 1) * query.Limit})
	}

	subs, err := uow.SubscriptionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Persistence("Failed to load subscriptions", err)
	}

	return s.views.build(ctx, uow, subs)
}

func (s *subscriptionService) Get(ctx context.Context, sess *session.Session, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := findVisibleSubscription(ctx, uow, sess, id)
	if err != nil {
		return nil, err
	}
	return s.views.buildOne(ctx, uow, sub)
}

// ModifyInvestment schedules a new monthly amount. It takes effect at the
// end of the current billing period.
func (s *subscriptionService) ModifyInvestment(ctx context.Context, sess *session.Session, id uuid.UUID, req *dto.ModifyInvestmentRequest) (*dto.ModifyInvestmentResponse, error) {
	amount := req.MonthlyInvestment
	if amount != math.Trunc(amount) || !s.bounds.Contains(amount) {
		return nil, apperror.Validation(fmt.Sprintf(
			"Monthly investment must be a whole number between %g and %g.", s.bounds.Min, s.bounds.Max))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := findVisibleSubscription(ctx, uow, sess, id)
	if err != nil {
		return nil, err
	}

	outstanding, err := loadOutstanding(ctx, uow, []uuid.UUID{sub.Id})
	if err != nil {
		return nil, apperror.Persistence("Failed to load subscription requests", err)
	}
	_, openCancel := outstanding.cancellations[sub.Id]
	_, openWithdraw := outstanding.withdrawals[sub.Id]
	if !lifecycle.CanModify(sub.Snapshot(openCancel, openWithdraw)) {
		return nil, apperror.Conflict(fmt.Sprintf(
			"Subscription in status '%s' cannot be modified", lifecycle.Label(sub.Status)))
	}

	previous := sub.MonthlyInvestment
	if amount == previous {
		sub.PendingMonthlyInvestment = nil
		sub.PendingInvestmentFrom = nil
	} else {
		sub.PendingMonthlyInvestment = &amount
		sub.PendingInvestmentFrom = sub.CurrentPeriodEnd
	}
	sub.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return nil, apperror.Persistence("Failed to update subscription", err)
	}

	s.logger.Info("REQUESTS", "Monthly investment change scheduled", map[string]interface{}{
		"subscription_id": sub.Id,
		"from":            previous,
		"to":              amount,
	})

	if amount != previous {
		s.publisher.PublishInvestmentChanged(ctx, sub.Id, sub.UserId, previous, amount, sub.PendingInvestmentFrom)
	}

	return &dto.ModifyInvestmentResponse{
		SubscriptionId:           sub.Id,
		MonthlyInvestment:        previous,
		PendingMonthlyInvestment: amount,
		EffectiveFrom:            sub.PendingInvestmentFrom,
	}, nil
}

// findVisibleSubscription loads a subscription the caller may see. Another
// user's subscription reads as not found.
func findVisibleSubscription(ctx context.Context, uow unitofwork.UnitOfWork, sess *session.Session, id uuid.UUID) (*entity.Subscription, error) {
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Persistence("Failed to load subscription", err)
	}
	if sub == nil || (!sess.IsAdmin() && sub.UserId != sess.UserID) {
		return nil, apperror.NotFound("Subscription not found")
	}
	return sub, nil
}

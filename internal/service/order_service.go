package service

import (
	"context"
	"fmt"

	"pharaohvault-be/internal/config"
	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/pkg/session"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/admin/mapper"
	"pharaohvault-be/pkg/poll"

	"github.com/google/uuid"
)

// Await outcomes besides the terminal order statuses.
const (
	OutcomeSucceeded     = "succeeded"
	OutcomePendingReview = "pending_review"
)

const defaultOrderLimit = 100

type IOrderService interface {
	Get(ctx context.Context, sess *session.Session, id uuid.UUID) (*dto.OrderResponse, error)
	Query(ctx context.Context, sess *session.Session, query dto.OrderQuery) ([]*dto.OrderResponse, error)
	ListBySubscription(ctx context.Context, sess *session.Session, subscriptionId uuid.UUID, limit int) ([]*dto.OrderResponse, error)
	// Await polls the order until its payment settles or the poll budget runs out.
	Await(ctx context.Context, sess *session.Session, id uuid.UUID) (*dto.AwaitOrderResponse, error)
}

type orderService struct {
	uowFactory unitofwork.RepositoryFactory
	poller     *poll.Poller
	logger     logger.ILogger
}

func NewOrderService(uowFactory unitofwork.RepositoryFactory, cfg config.PollConfig, logger logger.ILogger) IOrderService {
	return &orderService{
		uowFactory: uowFactory,
		// The first read is not a poll.
		poller: poll.New(cfg.Interval, cfg.MaxPolls+1),
		logger: logger,
	}
}

func (s *orderService) find(ctx context.Context, sess *session.Session, id uuid.UUID) (*entity.Order, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Persistence("Failed to load order", err)
	}
	if order == nil || (!sess.IsAdmin() && order.UserId != sess.UserID) {
		return nil, apperror.NotFound("We could not locate this order. Please contact support.")
	}
	return order, nil
}

func (s *orderService) Get(ctx context.Context, sess *session.Session, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return mapper.OrderToResponse(order), nil
}

func (s *orderService) Query(ctx context.Context, sess *session.Session, query dto.OrderQuery) ([]*dto.OrderResponse, error) {
	var specs []specification.Specification
	if !sess.IsAdmin() {
		specs = append(specs, specification.UserOwnedBy{UserID: sess.UserID})
	}
	if query.Status != "" {
		specs = append(specs, specification.Filter("status", query.Status))
	}
	if query.SubscriptionId != "" {
		id, err := uuid.Parse(query.SubscriptionId)
		if err != nil {
			return nil, apperror.Validation("Invalid subscription_id")
		}
		specs = append(specs, specification.BySubscription{SubscriptionID: id})
	}
	return s.list(ctx, query.Limit, specs...)
}

func (s *orderService) ListBySubscription(ctx context.Context, sess *session.Session, subscriptionId uuid.UUID, limit int) ([]*dto.OrderResponse, error) {
	specs := []specification.Specification{specification.BySubscription{SubscriptionID: subscriptionId}}
	if !sess.IsAdmin() {
		specs = append(specs, specification.UserOwnedBy{UserID: sess.UserID})
	}
	return s.list(ctx, limit, specs...)
}

func (s *orderService) list(ctx context.Context, limit int, specs ...specification.Specification) ([]*dto.OrderResponse, error) {
	if limit <= 0 || limit > defaultOrderLimit {
		limit = defaultOrderLimit
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Persistence("Failed to load orders", err)
	}

	res := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, mapper.OrderToResponse(o))
	}
	return res, nil
}

func (s *orderService) Await(ctx context.Context, sess *session.Session, id uuid.UUID) (*dto.AwaitOrderResponse, error) {
	var latest *entity.Order

	attempts, _, err := s.poller.Until(ctx, func(ctx context.Context) (bool, error) {
		order, err := s.find(ctx, sess, id)
		if err != nil {
			return false, err
		}
		latest = order
		return order.PaymentStatus != entity.PaymentStatusPending, nil
	})
	if err != nil {
		return nil, err
	}

	outcome := OutcomePendingReview
	switch {
	case latest.PaymentStatus == entity.PaymentStatusSucceeded:
		outcome = OutcomeSucceeded
	case latest.Status == entity.OrderStatusCancelled || latest.Status == entity.OrderStatusRefunded:
		outcome = string(latest.Status)
	}

	s.logger.Debug("CHECKOUT", fmt.Sprintf("Order settled as %s", outcome), map[string]interface{}{
		"order_id": id,
		"attempts": attempts,
	})

	return &dto.AwaitOrderResponse{
		Outcome:  outcome,
		Attempts: attempts,
		Order:    mapper.OrderToResponse(latest),
	}, nil
}

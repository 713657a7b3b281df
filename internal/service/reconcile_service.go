package service

import (
	"context"
	"fmt"
	"time"

	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	adminEvents "pharaohvault-be/pkg/admin/events"
	"pharaohvault-be/pkg/lifecycle"
)

type IReconcileService interface {
	// SweepStalePending expires pending_payment subscriptions created more than
	// olderThan ago and returns how many were moved.
	SweepStalePending(ctx context.Context, olderThan time.Duration) (int, error)
	DeletePending(ctx context.Context) (int64, error)
}

type reconcileService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

func NewReconcileService(uowFactory unitofwork.RepositoryFactory, publisher adminEvents.Publisher, logger logger.ILogger) IReconcileService {
	return &reconcileService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *reconcileService) SweepStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	stale, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.Filter("status", string(lifecycle.StatusPendingPayment)),
		specification.CreatedBefore{Time: cutoff},
	)
	if err != nil {
		return 0, apperror.Persistence("Failed to load pending subscriptions", err)
	}

	expired := 0
	for _, sub := range stale {
		if err := lifecycle.Transition(sub.Status, lifecycle.StatusIncompleteExpired); err != nil {
			s.logger.Warn("RECONCILE", "Skipping subscription", map[string]interface{}{
				"subscription_id": sub.Id,
				"error":           err.Error(),
			})
			continue
		}
		moved, err := uow.SubscriptionRepository().UpdateStatusFrom(ctx, sub.Id, sub.Status, lifecycle.StatusIncompleteExpired)
		if err != nil {
			return expired, apperror.Persistence("Failed to expire pending subscription", err)
		}
		if !moved {
			s.logger.Debug("RECONCILE", "Subscription left pending before expiry", map[string]interface{}{
				"subscription_id": sub.Id,
			})
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("RECONCILE", fmt.Sprintf("Expired %d pending subscriptions", expired), map[string]interface{}{
			"cutoff": cutoff,
		})
		s.publisher.PublishPendingExpired(ctx, expired, cutoff)
	}
	return expired, nil
}

func (s *reconcileService) DeletePending(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.SubscriptionRepository().DeleteAll(ctx,
		specification.Filter("status", string(lifecycle.StatusPendingPayment)),
	)
	if err != nil {
		return 0, apperror.Persistence("Failed to delete pending subscriptions", err)
	}

	s.logger.Info("RECONCILE", fmt.Sprintf("Deleted %d pending subscriptions", deleted), nil)
	return deleted, nil
}

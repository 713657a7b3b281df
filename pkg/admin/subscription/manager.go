package subscription

import (
	"context"
	"fmt"
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/lifecycle"

	"github.com/google/uuid"
)

// Manager handles subscription corrections made from the admin panel
type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{
		logger: logger,
	}
}

// Update applies an admin correction. A status change must be a legal
// lifecycle step and the accumulation totals may only grow.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.AdminUpdateSubscriptionRequest) (*entity.Subscription, error) {
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Persistence("Failed to load subscription", err)
	}
	if sub == nil {
		return nil, apperror.NotFound("Subscription not found")
	}

	changes := map[string]interface{}{"subscriptionId": id.String()}

	if req.Status != nil {
		to, ok := lifecycle.ParseStatus(*req.Status)
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("Unknown subscription status '%s'", *req.Status))
		}
		if err := lifecycle.Transition(sub.Status, to); err != nil {
			return nil, apperror.Conflict(fmt.Sprintf("Cannot move subscription from '%s' to '%s'", sub.Status, to))
		}
		changes["status"] = fmt.Sprintf("%s -> %s", sub.Status, to)
		sub.Status = to
	}

	if req.AccumulatedValue != nil {
		if err := checkAccumulation("accumulated_value", sub.AccumulatedValue, *req.AccumulatedValue); err != nil {
			return nil, err
		}
		sub.AccumulatedValue = *req.AccumulatedValue
		changes["accumulated_value"] = sub.AccumulatedValue
	}

	if req.AccumulatedWeight != nil {
		if err := checkAccumulation("accumulated_weight", sub.AccumulatedWeight, *req.AccumulatedWeight); err != nil {
			return nil, err
		}
		sub.AccumulatedWeight = *req.AccumulatedWeight
		changes["accumulated_weight"] = sub.AccumulatedWeight
	}

	if req.CurrentPeriodEnd != nil {
		end := *req.CurrentPeriodEnd
		sub.CurrentPeriodEnd = &end
	}
	sub.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return nil, apperror.Persistence("Failed to update subscription", err)
	}

	m.logger.Info("ADMIN", "Updated Subscription", changes)
	return sub, nil
}

// Delete removes a subscription. Its requests are removed by the foreign key cascade.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) error {
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.Persistence("Failed to load subscription", err)
	}
	if sub == nil {
		return apperror.NotFound("Subscription not found")
	}

	if err := uow.SubscriptionRepository().Delete(ctx, id); err != nil {
		return apperror.Persistence("Failed to delete subscription", err)
	}

	m.logger.Info("ADMIN", "Deleted Subscription", map[string]interface{}{
		"subscriptionId": id.String(),
		"status":         string(sub.Status),
	})
	return nil
}

func checkAccumulation(field string, current, next float64) error {
	if next < 0 {
		return apperror.Validation(fmt.Sprintf("%s cannot be negative", field))
	}
	if next < current {
		return apperror.Validation(fmt.Sprintf("%s cannot decrease (currently %g)", field, current))
	}
	return nil
}

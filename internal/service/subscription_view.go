package service

import (
	"context"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/metal"

	"github.com/google/uuid"
)

// viewBuilder decorates subscriptions with their derived fields: status badge,
// outstanding request ids, eligibility and the goal projection.
type viewBuilder struct {
	prices IMetalPriceService
	logger logger.ILogger
}

type outstandingRequests struct {
	cancellations map[uuid.UUID]uuid.UUID
	withdrawals   map[uuid.UUID]uuid.UUID
}

func cancellationStatuses(statuses []lifecycle.CancellationStatus) specification.StatusIn {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return specification.StatusIn{Statuses: out}
}

func withdrawalStatuses(statuses []lifecycle.WithdrawalStatus) specification.StatusIn {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return specification.StatusIn{Statuses: out}
}

func loadOutstanding(ctx context.Context, uow unitofwork.UnitOfWork, ids []uuid.UUID) (*outstandingRequests, error) {
	res := &outstandingRequests{
		cancellations: map[uuid.UUID]uuid.UUID{},
		withdrawals:   map[uuid.UUID]uuid.UUID{},
	}
	if len(ids) == 0 {
		return res, nil
	}

	cancellations, err := uow.CancellationRequestRepository().FindAll(ctx,
		specification.BySubscriptions{SubscriptionIDs: ids},
		cancellationStatuses(lifecycle.OutstandingCancellation),
	)
	if err != nil {
		return nil, err
	}
	for _, c := range cancellations {
		res.cancellations[c.SubscriptionId] = c.Id
	}

	withdrawals, err := uow.WithdrawalRequestRepository().FindAll(ctx,
		specification.BySubscriptions{SubscriptionIDs: ids},
		withdrawalStatuses(lifecycle.OutstandingWithdrawal),
	)
	if err != nil {
		return nil, err
	}
	for _, w := range withdrawals {
		res.withdrawals[w.SubscriptionId] = w.Id
	}

	return res, nil
}

func (b *viewBuilder) build(ctx context.Context, uow unitofwork.UnitOfWork, subs []*entity.Subscription) ([]dto.SubscriptionResponse, error) {
	ids := make([]uuid.UUID, len(subs))
	for i, s := range subs {
		ids[i] = s.Id
	}

	outstanding, err := loadOutstanding(ctx, uow, ids)
	if err != nil {
		return nil, apperror.Persistence("Failed to load subscription requests", err)
	}

	spots, err := b.prices.SpotPrices(ctx)
	if err != nil {
		// Views are still useful without a projection.
		b.logger.Warn("PRICES", "Spot prices unavailable for projection", map[string]interface{}{"error": err.Error()})
		spots = nil
	}

	res := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		res = append(res, subscriptionView(s, outstanding, spots))
	}
	return res, nil
}

func (b *viewBuilder) buildOne(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription) (*dto.SubscriptionResponse, error) {
	views, err := b.build(ctx, uow, []*entity.Subscription{sub})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func subscriptionView(s *entity.Subscription, outstanding *outstandingRequests, spots map[metal.Metal]metal.SpotPrice) dto.SubscriptionResponse {
	view := dto.SubscriptionResponse{
		Id:                       s.Id,
		UserId:                   s.UserId,
		Metal:                    string(s.Metal),
		PlanName:                 s.PlanName,
		TargetWeight:             s.TargetWeight,
		TargetUnit:               string(s.TargetUnit),
		MonthlyInvestment:        s.MonthlyInvestment,
		Quantity:                 s.Quantity,
		AccumulatedValue:         s.AccumulatedValue,
		AccumulatedWeight:        s.AccumulatedWeight,
		Status:                   string(s.Status),
		StatusLabel:              lifecycle.Label(s.Status),
		StatusTone:               lifecycle.Tone(s.Status),
		CurrentPeriodEnd:         s.CurrentPeriodEnd,
		PendingMonthlyInvestment: s.PendingMonthlyInvestment,
		PendingInvestmentFrom:    s.PendingInvestmentFrom,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}

	if id, ok := outstanding.cancellations[s.Id]; ok {
		id := id
		view.CancellationRequestId = &id
	}
	if id, ok := outstanding.withdrawals[s.Id]; ok {
		id := id
		view.WithdrawalRequestId = &id
	}

	elig := lifecycle.Evaluate(s.Snapshot(view.CancellationRequestId != nil, view.WithdrawalRequestId != nil))
	view.Eligibility = dto.EligibilityResponse{
		CanCancel:   elig.Cancel,
		CanModify:   elig.Modify,
		CanWithdraw: elig.Withdraw,
	}

	if spot, ok := spots[s.Metal]; ok && spot.PerUnit > 0 {
		p := metal.Project(s.Metal, spot, s.TargetWeight, s.TargetUnit, s.AccumulatedWeight, s.AccumulatedValue)
		view.Projection = &dto.ProjectionResponse{
			TradeUnit:         string(p.TradeUnit),
			TargetWeight:      p.TargetWeight,
			AccumulatedWeight: p.AccumulatedWeight,
			TargetValueUSD:    p.TargetValueUSD,
			Progress:          p.Progress,
		}
	}

	return view
}

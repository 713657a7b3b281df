package mapper

import (
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/model"
	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/metal"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:                       s.Id,
		UserId:                   s.UserId,
		Metal:                    metal.Metal(s.Metal),
		PlanName:                 s.PlanName,
		TargetWeight:             s.TargetWeight,
		TargetUnit:               metal.Unit(s.TargetUnit),
		MonthlyInvestment:        s.MonthlyInvestment,
		Quantity:                 s.Quantity,
		AccumulatedValue:         s.AccumulatedValue,
		AccumulatedWeight:        s.AccumulatedWeight,
		Status:                   lifecycle.Status(s.Status),
		CurrentPeriodEnd:         s.CurrentPeriodEnd,
		PendingMonthlyInvestment: s.PendingMonthlyInvestment,
		PendingInvestmentFrom:    s.PendingInvestmentFrom,
		Provider:                 s.Provider,
		ProviderCustomerId:       s.ProviderCustomerId,
		ProviderSubscriptionId:   s.ProviderSubscriptionId,
		CheckoutSessionId:        s.CheckoutSessionId,
		CheckoutClientSecret:     s.CheckoutClientSecret,
		CheckoutRedirectURL:      s.CheckoutRedirectURL,
		CheckoutState:            entity.CheckoutState(s.CheckoutState),
		IdempotencyKey:           s.IdempotencyKey,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
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
		CurrentPeriodEnd:         s.CurrentPeriodEnd,
		PendingMonthlyInvestment: s.PendingMonthlyInvestment,
		PendingInvestmentFrom:    s.PendingInvestmentFrom,
		Provider:                 s.Provider,
		ProviderCustomerId:       s.ProviderCustomerId,
		ProviderSubscriptionId:   s.ProviderSubscriptionId,
		CheckoutSessionId:        s.CheckoutSessionId,
		CheckoutClientSecret:     s.CheckoutClientSecret,
		CheckoutRedirectURL:      s.CheckoutRedirectURL,
		CheckoutState:            string(s.CheckoutState),
		IdempotencyKey:           s.IdempotencyKey,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToEntities(subs []*model.Subscription) []*entity.Subscription {
	entities := make([]*entity.Subscription, len(subs))
	for i, s := range subs {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

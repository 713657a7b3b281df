package mapper

import (
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/model"
	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/metal"
)

// RequestMapper converts cancellation and withdrawal requests.
type RequestMapper struct{}

func NewRequestMapper() *RequestMapper {
	return &RequestMapper{}
}

func (m *RequestMapper) CancellationToEntity(r *model.CancellationRequest) *entity.CancellationRequest {
	if r == nil {
		return nil
	}
	return &entity.CancellationRequest{
		Id:              r.Id,
		SubscriptionId:  r.SubscriptionId,
		UserId:          r.UserId,
		Reason:          r.Reason,
		Details:         r.Details,
		PreferredDate:   r.PreferredDate,
		Status:          lifecycle.CancellationStatus(r.Status),
		ResolutionNotes: r.ResolutionNotes,
		ProcessedAt:     r.ProcessedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (m *RequestMapper) CancellationToModel(r *entity.CancellationRequest) *model.CancellationRequest {
	if r == nil {
		return nil
	}
	return &model.CancellationRequest{
		Id:              r.Id,
		SubscriptionId:  r.SubscriptionId,
		UserId:          r.UserId,
		Reason:          r.Reason,
		Details:         r.Details,
		PreferredDate:   r.PreferredDate,
		Status:          string(r.Status),
		ResolutionNotes: r.ResolutionNotes,
		ProcessedAt:     r.ProcessedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (m *RequestMapper) WithdrawalToEntity(r *model.WithdrawalRequest) *entity.WithdrawalRequest {
	if r == nil {
		return nil
	}
	return &entity.WithdrawalRequest{
		Id:              r.Id,
		SubscriptionId:  r.SubscriptionId,
		UserId:          r.UserId,
		Metal:           metal.Metal(r.Metal),
		RequestedWeight: r.RequestedWeight,
		RequestedUnit:   metal.Unit(r.RequestedUnit),
		EstimatedValue:  r.EstimatedValue,
		Notes:           r.Notes,
		Status:          lifecycle.WithdrawalStatus(r.Status),
		ResolutionNotes: r.ResolutionNotes,
		ProcessedAt:     r.ProcessedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (m *RequestMapper) WithdrawalToModel(r *entity.WithdrawalRequest) *model.WithdrawalRequest {
	if r == nil {
		return nil
	}
	return &model.WithdrawalRequest{
		Id:              r.Id,
		SubscriptionId:  r.SubscriptionId,
		UserId:          r.UserId,
		Metal:           string(r.Metal),
		RequestedWeight: r.RequestedWeight,
		RequestedUnit:   string(r.RequestedUnit),
		EstimatedValue:  r.EstimatedValue,
		Notes:           r.Notes,
		Status:          string(r.Status),
		ResolutionNotes: r.ResolutionNotes,
		ProcessedAt:     r.ProcessedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

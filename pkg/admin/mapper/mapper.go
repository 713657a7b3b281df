package mapper

import (
	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
)

// UserToProfileResponse converts entity to profile response DTO
func UserToProfileResponse(u *entity.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		Id:        u.Id,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// UsersToProfileResponse converts multiple entities to profile response DTOs
func UsersToProfileResponse(users []*entity.User) []dto.UserProfileResponse {
	res := make([]dto.UserProfileResponse, 0, len(users))
	for _, u := range users {
		res = append(res, UserToProfileResponse(u))
	}
	return res
}

func DashboardStatsToResponse(s *entity.DashboardStats) *dto.DashboardStatsResponse {
	return &dto.DashboardStatsResponse{
		TotalInvested:        s.TotalInvested,
		MonthlyInvested:      s.MonthlyInvested,
		UserCount:            s.UserCount,
		ActiveSubscriptions:  s.ActiveSubscriptions,
		PendingSubscriptions: s.PendingSubscriptions,
	}
}

func CancellationToResponse(r *entity.CancellationRequest) *dto.CancellationRequestResponse {
	return &dto.CancellationRequestResponse{
		Id:              r.Id,
		SubscriptionId:  r.SubscriptionId,
		UserId:          r.UserId,
		Reason:          r.Reason,
		Details:         r.Details,
		PreferredDate:   r.PreferredDate,
		Status:          string(r.Status),
		ResolutionNotes: r.ResolutionNotes,
		CreatedAt:       r.CreatedAt,
		ProcessedAt:     r.ProcessedAt,
	}
}

func WithdrawalToResponse(r *entity.WithdrawalRequest) *dto.WithdrawalRequestResponse {
	return &dto.WithdrawalRequestResponse{
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
		CreatedAt:       r.CreatedAt,
		ProcessedAt:     r.ProcessedAt,
	}
}

func OrderToResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		Id:                     o.Id,
		SubscriptionId:         o.SubscriptionId,
		Amount:                 o.Amount,
		Currency:               o.Currency,
		Status:                 string(o.Status),
		PaymentStatus:          o.PaymentStatus,
		InvoiceStatus:          o.InvoiceStatus,
		Product:                o.Product,
		ProviderSubscriptionId: o.ProviderSubscriptionId,
		ReceiptURL:             o.ReceiptURL,
		CreatedAt:              o.CreatedAt,
	}
}

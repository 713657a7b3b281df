package dto

// --- User Management ---

type AdminUserListRequest struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Role  string `query:"role"`
}

type AdminUpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// --- Dashboard ---

type DashboardStatsResponse struct {
	TotalInvested        float64 `json:"total_invested"`
	MonthlyInvested      float64 `json:"monthly_invested"`
	UserCount            int64   `json:"user_count"`
	ActiveSubscriptions  int64   `json:"active_subscriptions"`
	PendingSubscriptions int64   `json:"pending_subscriptions"`
}

type UserWithSubscriptionsResponse struct {
	User          UserProfileResponse    `json:"user"`
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

type DeletePendingResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

type SweepPendingResponse struct {
	ExpiredCount int `json:"expired_count"`
}

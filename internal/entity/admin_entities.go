package entity

// DashboardStats is the admin overview, recomputed on every request.
type DashboardStats struct {
	TotalInvested        float64
	MonthlyInvested      float64
	UserCount            int64
	ActiveSubscriptions  int64
	PendingSubscriptions int64
}

type UserStats struct {
	TotalInvested     float64
	MonthlyInvested   float64
	SubscriptionCount int
}

// UserSubscriptions groups a user with every subscription they own.
type UserSubscriptions struct {
	User          *User
	Subscriptions []*Subscription
}

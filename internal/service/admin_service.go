package service

import (
	"context"
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/admin/dashboard"
	"pharaohvault-be/pkg/admin/mapper"
	"pharaohvault-be/pkg/admin/subscription"
	"pharaohvault-be/pkg/admin/user"

	"github.com/google/uuid"
)

// SessionRevoker ends a user's live sessions.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID uuid.UUID) error
}

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	GetUsersWithSubscriptions(ctx context.Context) ([]dto.UserWithSubscriptionsResponse, error)

	// User Management
	GetAllUsers(ctx context.Context, req dto.AdminUserListRequest) ([]dto.UserProfileResponse, error)
	UpdateUser(ctx context.Context, userId uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	UpdateUserRole(ctx context.Context, actorId, userId uuid.UUID, role string) (*dto.UserProfileResponse, error)
	DeleteUser(ctx context.Context, actorId, userId uuid.UUID) error

	// Subscription Management
	UpdateSubscription(ctx context.Context, id uuid.UUID, req dto.AdminUpdateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	DeleteSubscription(ctx context.Context, id uuid.UUID) error
	DeletePendingSubscriptions(ctx context.Context) (*dto.DeletePendingResponse, error)
	SweepPendingSubscriptions(ctx context.Context) (*dto.SweepPendingResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	views      *viewBuilder
	pendingTTL time.Duration

	// Domain Components
	userManager         *user.Manager
	subscriptionManager *subscription.Manager
	dashboardAggregator *dashboard.Aggregator
	reconciler          IReconcileService
	sessions            SessionRevoker
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	prices IMetalPriceService,
	userManager *user.Manager,
	subscriptionManager *subscription.Manager,
	dashboardAggregator *dashboard.Aggregator,
	reconciler IReconcileService,
	sessions SessionRevoker,
	pendingTTL time.Duration,
) IAdminService {
	return &adminService{
		uowFactory:          uowFactory,
		logger:              logger,
		views:               &viewBuilder{prices: prices, logger: logger},
		pendingTTL:          pendingTTL,
		userManager:         userManager,
		subscriptionManager: subscriptionManager,
		dashboardAggregator: dashboardAggregator,
		reconciler:          reconciler,
		sessions:            sessions,
	}
}

// ============================================================================
// Dashboard & Stats
// ============================================================================

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats, err := s.dashboardAggregator.GetStats(ctx, uow)
	if err != nil {
		return nil, apperror.Persistence("Failed to compute dashboard stats", err)
	}
	return mapper.DashboardStatsToResponse(stats), nil
}

func (s *adminService) GetUsersWithSubscriptions(ctx context.Context) ([]dto.UserWithSubscriptionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	groups, err := s.dashboardAggregator.ListUsersWithSubscriptions(ctx, uow)
	if err != nil {
		return nil, apperror.Persistence("Failed to load users", err)
	}

	res := make([]dto.UserWithSubscriptionsResponse, 0, len(groups))
	for _, g := range groups {
		views, err := s.views.build(ctx, uow, g.Subscriptions)
		if err != nil {
			return nil, err
		}
		res = append(res, dto.UserWithSubscriptionsResponse{
			User:          mapper.UserToProfileResponse(g.User),
			Subscriptions: views,
		})
	}
	return res, nil
}

// ============================================================================
// User Management
// ============================================================================

func (s *adminService) GetAllUsers(ctx context.Context, req dto.AdminUserListRequest) ([]dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := s.userManager.FindAll(ctx, uow, req.Page, req.Limit, req.Role)
	if err != nil {
		return nil, err
	}
	return mapper.UsersToProfileResponse(users), nil
}

func (s *adminService) UpdateUser(ctx context.Context, userId uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	u, err := s.userManager.Update(ctx, uow, userId, req)
	if err != nil {
		return nil, err
	}
	profile := mapper.UserToProfileResponse(u)
	return &profile, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, actorId, userId uuid.UUID, role string) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	before, err := s.userManager.FindOne(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	u, err := s.userManager.UpdateRole(ctx, uow, actorId, userId, role)
	if err != nil {
		return nil, err
	}

	// Sessions carry the role they were issued with.
	if u.Role != before.Role {
		if err := s.revokeSessions(ctx, userId); err != nil {
			return nil, err
		}
	}

	profile := mapper.UserToProfileResponse(u)
	return &profile, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actorId, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.userManager.Delete(ctx, uow, actorId, userId); err != nil {
		return err
	}
	return s.revokeSessions(ctx, userId)
}

func (s *adminService) revokeSessions(ctx context.Context, userId uuid.UUID) error {
	if err := s.sessions.RevokeUser(ctx, userId); err != nil {
		s.logger.Error("ADMIN", "Failed to revoke user sessions", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return apperror.Persistence("Failed to revoke user sessions", err)
	}
	return nil
}

// ============================================================================
// Subscription Management
// ============================================================================

func (s *adminService) UpdateSubscription(ctx context.Context, id uuid.UUID, req dto.AdminUpdateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := s.subscriptionManager.Update(ctx, uow, id, req)
	if err != nil {
		return nil, err
	}
	return s.views.buildOne(ctx, uow, sub)
}

func (s *adminService) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.subscriptionManager.Delete(ctx, uow, id)
}

func (s *adminService) DeletePendingSubscriptions(ctx context.Context) (*dto.DeletePendingResponse, error) {
	deleted, err := s.reconciler.DeletePending(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DeletePendingResponse{DeletedCount: deleted}, nil
}

func (s *adminService) SweepPendingSubscriptions(ctx context.Context) (*dto.SweepPendingResponse, error) {
	expired, err := s.reconciler.SweepStalePending(ctx, s.pendingTTL)
	if err != nil {
		return nil, err
	}
	return &dto.SweepPendingResponse{ExpiredCount: expired}, nil
}

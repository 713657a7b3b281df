package service

import (
	"context"
	"testing"
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/pkg/session"
	"pharaohvault-be/internal/repository/memory"
	"pharaohvault-be/pkg/admin/dashboard"
	"pharaohvault-be/pkg/admin/subscription"
	"pharaohvault-be/pkg/admin/user"
	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/metal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture() (*fakeStore, IAdminService) {
	store, svc, _ := newAdminFixtureWithSessions()
	return store, svc
}

func newAdminFixtureWithSessions() (*fakeStore, IAdminService, *session.Manager) {
	store := newFakeStore()
	sessions := session.NewManager(memory.NewSessionRepository(), "test-secret", time.Hour)
	seedPrices(store)
	log := logger.NewNopLogger()
	svc := NewAdminService(
		store,
		log,
		newPriceService(store),
		user.NewManager(log),
		subscription.NewManager(log),
		dashboard.NewAggregator(log),
		NewReconcileService(store, &recordingPublisher{}, log),
		sessions,
		24*time.Hour,
	)
	return store, svc, sessions
}

func ptr[T any](v T) *T { return &v }

func TestAdminDashboardAndGrouping(t *testing.T) {
	ctx := context.Background()
	store, svc := newAdminFixture()
	alice := store.addUser(entity.User{Email: "alice@example.com", CreatedAt: time.Now().Add(-time.Hour)})
	store.addUser(entity.User{Email: "bob@example.com"})
	store.addSubscription(entity.Subscription{UserId: alice.Id, Metal: metal.Gold, Status: lifecycle.StatusActive, MonthlyInvestment: 100, AccumulatedValue: 300})
	store.addSubscription(entity.Subscription{UserId: alice.Id, Metal: metal.Silver, Status: lifecycle.StatusPendingPayment, MonthlyInvestment: 50})

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 300.0, stats.TotalInvested)
	assert.Equal(t, 100.0, stats.MonthlyInvested)
	assert.EqualValues(t, 2, stats.UserCount)
	assert.EqualValues(t, 1, stats.ActiveSubscriptions)
	assert.EqualValues(t, 1, stats.PendingSubscriptions)

	groups, err := svc.GetUsersWithSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "bob@example.com", groups[0].User.Email)
	assert.Empty(t, groups[0].Subscriptions)
	assert.Len(t, groups[1].Subscriptions, 2)
}

func TestAdminUserManagement(t *testing.T) {
	ctx := context.Background()
	store, svc := newAdminFixture()
	admin := store.addUser(entity.User{Email: "root@example.com", Role: entity.UserRoleAdmin})
	target := store.addUser(entity.User{Email: "carol@example.com"})

	users, err := svc.GetAllUsers(ctx, dto.AdminUserListRequest{Role: "user"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, target.Id, users[0].Id)

	_, err = svc.GetAllUsers(ctx, dto.AdminUserListRequest{Role: "owner"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	updated, err := svc.UpdateUserRole(ctx, admin.Id, target.Id, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)

	_, err = svc.UpdateUserRole(ctx, admin.Id, admin.Id, "user")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	profile, err := svc.UpdateUser(ctx, target.Id, dto.UpdateProfileRequest{FullName: " Carol Danvers ", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "Carol Danvers", profile.FullName)

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.Id, admin.Id), apperror.ErrConflict)
	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.Id, uuid.New()), apperror.ErrNotFound)
	require.NoError(t, svc.DeleteUser(ctx, admin.Id, target.Id))
	assert.Len(t, store.users, 1)
}

func TestAdminRoleChangeAndDeletionEndSessions(t *testing.T) {
	ctx := context.Background()
	store, svc, sessions := newAdminFixtureWithSessions()
	root := store.addUser(entity.User{Email: "root@example.com", Role: entity.UserRoleAdmin})
	deputy := store.addUser(entity.User{Email: "deputy@example.com", Role: entity.UserRoleAdmin})
	holder := store.addUser(entity.User{Email: "holder@example.com"})

	rootToken, _, err := sessions.Init(ctx, root.Id, root.Email, string(root.Role))
	require.NoError(t, err)
	deputyToken, _, err := sessions.Init(ctx, deputy.Id, deputy.Email, string(deputy.Role))
	require.NoError(t, err)
	holderWeb, _, err := sessions.Init(ctx, holder.Id, holder.Email, string(holder.Role))
	require.NoError(t, err)
	holderMobile, _, err := sessions.Init(ctx, holder.Id, holder.Email, string(holder.Role))
	require.NoError(t, err)

	// Re-applying the current role keeps the session.
	_, err = svc.UpdateUserRole(ctx, root.Id, deputy.Id, "admin")
	require.NoError(t, err)
	_, err = sessions.Resolve(ctx, deputyToken)
	require.NoError(t, err)

	_, err = svc.UpdateUserRole(ctx, root.Id, deputy.Id, "user")
	require.NoError(t, err)
	_, err = sessions.Resolve(ctx, deputyToken)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	// A fresh sign-in carries the demoted role.
	reissued, _, err := sessions.Init(ctx, deputy.Id, deputy.Email, string(store.users[deputy.Id].Role))
	require.NoError(t, err)
	resolved, err := sessions.Resolve(ctx, reissued)
	require.NoError(t, err)
	assert.False(t, resolved.IsAdmin())

	require.NoError(t, svc.DeleteUser(ctx, root.Id, holder.Id))
	for _, token := range []string{holderWeb, holderMobile} {
		_, err = sessions.Resolve(ctx, token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	}

	_, err = sessions.Resolve(ctx, rootToken)
	assert.NoError(t, err)
}

func TestAdminUpdateSubscription(t *testing.T) {
	ctx := context.Background()
	store, svc := newAdminFixture()
	sub := store.addSubscription(entity.Subscription{
		UserId:            uuid.New(),
		Metal:             metal.Gold,
		TargetWeight:      10,
		TargetUnit:        metal.Gram,
		Status:            lifecycle.StatusPendingPayment,
		AccumulatedValue:  10,
		AccumulatedWeight: 0.1,
	})

	res, err := svc.UpdateSubscription(ctx, sub.Id, dto.AdminUpdateSubscriptionRequest{
		Status:            ptr("active"),
		AccumulatedValue:  ptr(80.0),
		AccumulatedWeight: ptr(1.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "active", res.Status)
	assert.Equal(t, 80.0, res.AccumulatedValue)

	_, err = svc.UpdateSubscription(ctx, sub.Id, dto.AdminUpdateSubscriptionRequest{Status: ptr("pending_payment")})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svc.UpdateSubscription(ctx, sub.Id, dto.AdminUpdateSubscriptionRequest{Status: ptr("frozen")})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.UpdateSubscription(ctx, sub.Id, dto.AdminUpdateSubscriptionRequest{AccumulatedWeight: ptr(0.5)})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.UpdateSubscription(ctx, sub.Id, dto.AdminUpdateSubscriptionRequest{AccumulatedValue: ptr(-1.0)})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	stored := store.subscription(sub.Id)
	assert.Equal(t, lifecycle.StatusActive, stored.Status)
	assert.Equal(t, 1.0, stored.AccumulatedWeight)

	_, err = svc.UpdateSubscription(ctx, uuid.New(), dto.AdminUpdateSubscriptionRequest{})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAdminDeleteSubscriptions(t *testing.T) {
	ctx := context.Background()
	store, svc := newAdminFixture()
	owner := uuid.New()
	active := store.addSubscription(entity.Subscription{UserId: owner, Metal: metal.Gold, Status: lifecycle.StatusActive})
	store.addSubscription(entity.Subscription{UserId: owner, Metal: metal.Gold, Status: lifecycle.StatusPendingPayment})
	stale := store.addSubscription(entity.Subscription{UserId: owner, Metal: metal.Silver, Status: lifecycle.StatusPendingPayment, CreatedAt: time.Now().Add(-72 * time.Hour)})

	swept, err := svc.SweepPendingSubscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, swept.ExpiredCount)
	assert.Equal(t, lifecycle.StatusIncompleteExpired, store.subscription(stale.Id).Status)

	deleted, err := svc.DeletePendingSubscriptions(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted.DeletedCount)

	require.NoError(t, svc.DeleteSubscription(ctx, active.Id))
	assert.Nil(t, store.subscription(active.Id))
	assert.ErrorIs(t, svc.DeleteSubscription(ctx, active.Id), apperror.ErrNotFound)
}

package service

import (
	"context"
	"testing"
	"time"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/metal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepStalePending(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	pub := &recordingPublisher{}
	svc := NewReconcileService(store, pub, logger.NewNopLogger())

	old := time.Now().Add(-48 * time.Hour)
	stale := store.addSubscription(entity.Subscription{UserId: uuid.New(), Metal: metal.Gold, Status: lifecycle.StatusPendingPayment, CreatedAt: old})
	fresh := store.addSubscription(entity.Subscription{UserId: uuid.New(), Metal: metal.Gold, Status: lifecycle.StatusPendingPayment})
	active := store.addSubscription(entity.Subscription{UserId: uuid.New(), Metal: metal.Gold, Status: lifecycle.StatusActive, CreatedAt: old})

	count, err := svc.SweepStalePending(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, lifecycle.StatusIncompleteExpired, store.subscription(stale.Id).Status)
	assert.Equal(t, lifecycle.StatusPendingPayment, store.subscription(fresh.Id).Status)
	assert.Equal(t, lifecycle.StatusActive, store.subscription(active.Id).Status)
	assert.Equal(t, []string{"pending_expired"}, pub.published())

	count, err = svc.SweepStalePending(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, pub.published(), 1)
}

func TestSweepSkipsRowsActivatedMidSweep(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	pub := &recordingPublisher{}
	svc := NewReconcileService(store, pub, logger.NewNopLogger())

	old := time.Now().Add(-48 * time.Hour)
	paid := store.addSubscription(entity.Subscription{UserId: uuid.New(), Metal: metal.Gold, Status: lifecycle.StatusPendingPayment, CreatedAt: old})
	abandoned := store.addSubscription(entity.Subscription{UserId: uuid.New(), Metal: metal.Silver, Status: lifecycle.StatusPendingPayment, CreatedAt: old})

	// The payment webhook lands between the read and the write.
	store.afterSubscriptionList = func() {
		store.setSubscriptionStatus(paid.Id, lifecycle.StatusActive)
	}

	count, err := svc.SweepStalePending(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, lifecycle.StatusActive, store.subscription(paid.Id).Status)
	assert.Equal(t, lifecycle.StatusIncompleteExpired, store.subscription(abandoned.Id).Status)
	assert.Equal(t, []string{"pending_expired"}, pub.published())
}

func TestDeletePending(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewReconcileService(store, &recordingPublisher{}, logger.NewNopLogger())

	store.addSubscription(entity.Subscription{UserId: uuid.New(), Metal: metal.Gold, Status: lifecycle.StatusPendingPayment})
	store.addSubscription(entity.Subscription{UserId: uuid.New(), Metal: metal.Silver, Status: lifecycle.StatusPendingPayment})
	kept := store.addSubscription(entity.Subscription{UserId: uuid.New(), Metal: metal.Gold, Status: lifecycle.StatusActive})

	deleted, err := svc.DeletePending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
	require.Len(t, store.subscriptions, 1)
	assert.NotNil(t, store.subscription(kept.Id))
}

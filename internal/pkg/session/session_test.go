package session_test

import (
	"context"
	"testing"
	"time"

	"pharaohvault-be/internal/pkg/session"
	"pharaohvault-be/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewSessionRepository(), "test-secret", time.Hour)
	userID := uuid.New()

	token, s, err := mgr.Init(ctx, userID, "holder@example.com", "user")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, userID, s.UserID)
	assert.False(t, s.IsAdmin())

	resolved, err := mgr.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, resolved.ID)
	assert.Equal(t, "holder@example.com", resolved.Email)

	require.NoError(t, mgr.Teardown(ctx, resolved))

	_, err = mgr.Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestResolveRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewSessionRepository(), "test-secret", time.Hour)

	_, err := mgr.Resolve(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, session.ErrInvalidToken)

	other := session.NewManager(memory.NewSessionRepository(), "other-secret", time.Hour)
	token, _, err := other.Init(ctx, uuid.New(), "x@example.com", "admin")
	require.NoError(t, err)

	_, err = mgr.Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrInvalidToken)

	noJti := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := noJti.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = mgr.Resolve(ctx, signed)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestAdminRole(t *testing.T) {
	s := &session.Session{Role: session.RoleAdmin}
	assert.True(t, s.IsAdmin())

	var missing *session.Session
	assert.False(t, missing.IsAdmin())
}

func TestRevokeUserEndsOnlyTheirSessions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionRepository()
	mgr := session.NewManager(store, "test-secret", time.Hour)
	demoted, other := uuid.New(), uuid.New()

	laptop, _, err := mgr.Init(ctx, demoted, "ops@example.com", session.RoleAdmin)
	require.NoError(t, err)
	phone, phoneSession, err := mgr.Init(ctx, demoted, "ops@example.com", session.RoleAdmin)
	require.NoError(t, err)
	kept, _, err := mgr.Init(ctx, other, "holder@example.com", "user")
	require.NoError(t, err)

	// Logging out of one device leaves the index consistent.
	require.NoError(t, mgr.Teardown(ctx, phoneSession))

	require.NoError(t, mgr.RevokeUser(ctx, demoted))

	for _, token := range []string{laptop, phone} {
		_, err := mgr.Resolve(ctx, token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	}
	_, err = mgr.Resolve(ctx, kept)
	assert.NoError(t, err)

	// Revoking a user with no sessions is a no-op.
	assert.NoError(t, mgr.RevokeUser(ctx, uuid.New()))
}

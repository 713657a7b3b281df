package service

import (
	"context"
	"testing"
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/pkg/session"
	"pharaohvault-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*fakeStore, *session.Manager, IAuthService) {
	store := newFakeStore()
	mgr := session.NewManager(memory.NewSessionRepository(), "test-secret", time.Hour)
	return store, mgr, NewAuthService(store, mgr, logger.NewNopLogger())
}

func TestSignUpSignInSignOut(t *testing.T) {
	ctx := context.Background()
	store, mgr, svc := newAuthFixture()

	res, err := svc.SignUp(ctx, &dto.SignUpRequest{
		Email:    "  Ada@Example.com ",
		Password: "correct-horse",
		FullName: "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, "user", res.User.Role)
	assert.NotEmpty(t, res.AccessToken)
	assert.Len(t, store.users, 1)

	signedIn, err := svc.SignIn(ctx, &dto.SignInRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	sess, err := mgr.Resolve(ctx, signedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.Id, sess.UserID)

	me, err := svc.Me(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", me.FullName)

	require.NoError(t, svc.SignOut(ctx, sess))
	_, err = mgr.Resolve(ctx, signedIn.AccessToken)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newAuthFixture()
	req := &dto.SignUpRequest{Email: "dup@example.com", Password: "password1", FullName: "Dup"}

	_, err := svc.SignUp(ctx, req)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, req)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newAuthFixture()
	_, err := svc.SignUp(ctx, &dto.SignUpRequest{Email: "b@example.com", Password: "password1", FullName: "Bee"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, &dto.SignInRequest{Email: "b@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.SignIn(ctx, &dto.SignInRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

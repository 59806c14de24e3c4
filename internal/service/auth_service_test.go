package service

import (
	"regexp"
	"testing"
	"time"

	"coursehub-be/internal/model"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/repository/memory"
	"coursehub-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(f *fixture, cache *memory.SessionRepository) *authService {
	return NewAuthService(f.uow, cache, f.log).(*authService)
}

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[a-z2-7]{32}$`), token)

	other, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	assert.Len(t, SessionIDFromToken(token), 64)
	assert.Equal(t, SessionIDFromToken(token), SessionIDFromToken(token))
}

func TestAuthService_CreateAndValidate(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "user@example.com")
	svc := newAuth(f, memory.NewSessionRepository(time.Minute))

	token, session, err := svc.CreateSession(f.ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, SessionIDFromToken(token), session.Id)
	assert.WithinDuration(t, time.Now().Add(SessionLifetime), session.ExpiresAt, time.Minute)

	// Only the hash is stored.
	var stored model.Session
	require.NoError(t, f.db.First(&stored, "id = ?", session.Id).Error)
	assert.NotEqual(t, token, stored.Id)

	res, err := svc.ValidateSessionToken(f.ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, res.User.Id)

	_, err = svc.ValidateSessionToken(f.ctx, "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	_, err = svc.ValidateSessionToken(f.ctx, "")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestAuthService_ExpiredSessionIsDeleted(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "user@example.com")
	svc := newAuth(f, nil)

	token, session, err := svc.CreateSession(f.ctx, user.Id)
	require.NoError(t, err)

	svc.now = func() time.Time { return session.ExpiresAt.Add(time.Second) }
	_, err = svc.ValidateSessionToken(f.ctx, token)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	var count int64
	require.NoError(t, f.db.Model(&model.Session{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuthService_SessionSlidesForward(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "user@example.com")
	svc := newAuth(f, nil)

	token, session, err := svc.CreateSession(f.ctx, user.Id)
	require.NoError(t, err)

	// 20 days in, 10 remain: below the 15 day threshold.
	later := session.ExpiresAt.Add(-10 * 24 * time.Hour)
	svc.now = func() time.Time { return later }

	res, err := svc.ValidateSessionToken(f.ctx, token)
	require.NoError(t, err)
	assert.WithinDuration(t, later.Add(SessionLifetime), res.Session.ExpiresAt, time.Second)

	var stored model.Session
	require.NoError(t, f.db.First(&stored, "id = ?", session.Id).Error)
	assert.WithinDuration(t, later.Add(SessionLifetime), stored.ExpiresAt, time.Second)
}

func TestAuthService_FreshSessionDoesNotSlide(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "user@example.com")
	svc := newAuth(f, nil)

	token, session, err := svc.CreateSession(f.ctx, user.Id)
	require.NoError(t, err)

	svc.now = func() time.Time { return session.ExpiresAt.Add(-20 * 24 * time.Hour) }
	res, err := svc.ValidateSessionToken(f.ctx, token)
	require.NoError(t, err)
	assert.WithinDuration(t, session.ExpiresAt, res.Session.ExpiresAt, time.Second)
}

func TestAuthService_Invalidate(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "user@example.com")
	cache := memory.NewSessionRepository(time.Minute)
	svc := newAuth(f, cache)

	token1, session1, err := svc.CreateSession(f.ctx, user.Id)
	require.NoError(t, err)
	token2, _, err := svc.CreateSession(f.ctx, user.Id)
	require.NoError(t, err)
	token3, _, err := svc.CreateSession(f.ctx, user.Id)
	require.NoError(t, err)

	// Warm the cache so invalidation has to clear it.
	_, err = svc.ValidateSessionToken(f.ctx, token1)
	require.NoError(t, err)
	_, found := cache.Get(session1.Id)
	require.True(t, found)

	require.NoError(t, svc.InvalidateSession(f.ctx, session1.Id))
	_, err = svc.ValidateSessionToken(f.ctx, token1)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = svc.ValidateSessionToken(f.ctx, token2)
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateUserSessions(f.ctx, user.Id))
	_, err = svc.ValidateSessionToken(f.ctx, token2)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	_, err = svc.ValidateSessionToken(f.ctx, token3)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

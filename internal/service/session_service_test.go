package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/backend"
	"storefront/internal/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	}).SignedString([]byte("not-our-secret"))
	require.NoError(t, err)
	return tok
}

func newSessionService(accounts *fakeAccounts, store *memStore, now time.Time) (*SessionService, *Registry, *recordingPublisher) {
	events := &recordingPublisher{}
	reg := NewRegistry(&fakeCart{}, &fakeOrders{}, events)
	svc := NewSessionService(accounts, store, reg, events, 24*time.Hour)
	svc.now = func() time.Time { return now }
	return svc, reg, events
}

func TestLoginCreatesSession(t *testing.T) {
	now := time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC)
	accounts := &fakeAccounts{result: &models.LoginResult{
		Token: signedToken(t, now.Add(2*time.Hour)),
		User:  models.User{ID: 7, Name: "Budi", Email: "budi@example.com"},
	}}
	store := newMemStore()
	svc, _, events := newSessionService(accounts, store, now)

	sess, err := svc.Login(context.Background(), models.Credentials{Email: "budi@example.com", Password: "secret"})
	require.NoError(t, err)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, int64(7), sess.User.ID)
	assert.Equal(t, now.Add(2*time.Hour).Unix(), sess.ExpiresAt.Unix())
	assert.Equal(t, 2*time.Hour, store.ttls[sess.ID])
	assert.Equal(t, []string{models.EventTypeCustomerLoggedIn}, events.events)

	got, err := svc.Resolve(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess.Token, got.Token)
}

func TestLoginOpaqueTokenUsesConfiguredTTL(t *testing.T) {
	now := time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC)
	accounts := &fakeAccounts{result: &models.LoginResult{Token: "opaque", User: models.User{ID: 1}}}
	store := newMemStore()
	svc, _, _ := newSessionService(accounts, store, now)

	sess, err := svc.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), sess.ExpiresAt)
}

func TestLoginFailure(t *testing.T) {
	accounts := &fakeAccounts{loginErr: &backend.Error{Kind: backend.KindUnauthorized, Status: 401, Message: "email atau password salah"}}
	store := newMemStore()
	svc, _, _ := newSessionService(accounts, store, time.Now())

	_, err := svc.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "x"})
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
	assert.Equal(t, "email atau password salah", backend.Message(err))
	assert.Empty(t, store.sessions)
}

func TestResolveDestroysExpiredToken(t *testing.T) {
	now := time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	svc, reg, _ := newSessionService(&fakeAccounts{}, store, now)

	sess := &models.Session{
		ID:        "s1",
		Token:     signedToken(t, now.Add(-time.Minute)),
		User:      models.User{ID: 7},
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, store.SaveSession(context.Background(), sess, time.Hour))
	reg.For(sess)
	require.Equal(t, 1, reg.Len())

	got, err := svc.Resolve(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, store.sessions)
	assert.Zero(t, reg.Len())
}

func TestResolveDestroysExpiredRecord(t *testing.T) {
	now := time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	svc, _, _ := newSessionService(&fakeAccounts{}, store, now)

	require.NoError(t, store.SaveSession(context.Background(), &models.Session{
		ID: "s1", Token: "opaque", ExpiresAt: now,
	}, time.Hour))

	got, err := svc.Resolve(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, store.sessions)
}

func TestResolveAnonymous(t *testing.T) {
	svc, _, _ := newSessionService(&fakeAccounts{}, newMemStore(), time.Now())

	for _, id := range []string{"", "missing"} {
		got, err := svc.Resolve(context.Background(), id)
		assert.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestResolveDropsStateWhenStoreForgotSession(t *testing.T) {
	now := time.Now()
	store := newMemStore()
	svc, reg, _ := newSessionService(&fakeAccounts{}, store, now)

	for i := 0; i < 100; i++ {
		sess := &models.Session{ID: fmt.Sprintf("s%d", i), Token: "tok", User: models.User{ID: int64(i)}, ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, store.SaveSession(context.Background(), sess, time.Hour))
		reg.For(sess)
		require.NoError(t, store.DeleteSession(context.Background(), sess.ID))
	}
	require.Equal(t, 100, reg.Len())

	for i := 0; i < 100; i++ {
		got, err := svc.Resolve(context.Background(), fmt.Sprintf("s%d", i))
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.Zero(t, reg.Len())
}

func TestLogout(t *testing.T) {
	now := time.Now()
	accounts := &fakeAccounts{}
	store := newMemStore()
	svc, reg, events := newSessionService(accounts, store, now)

	sess := &models.Session{ID: "s1", Token: "tok", User: models.User{ID: 7}, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.SaveSession(context.Background(), sess, time.Hour))
	reg.For(sess)

	require.NoError(t, svc.Logout(context.Background(), "s1"))

	assert.Equal(t, []string{"tok"}, accounts.logouts)
	assert.Empty(t, store.sessions)
	assert.Zero(t, reg.Len())
	assert.Equal(t, []string{models.EventTypeCustomerLoggedOut}, events.events)

	assert.NoError(t, svc.Logout(context.Background(), "s1"))
}

func TestProfile(t *testing.T) {
	accounts := &fakeAccounts{user: &models.User{ID: 7, Name: "Budi"}}
	svc, _, _ := newSessionService(accounts, newMemStore(), time.Now())

	_, err := svc.Profile(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	user, err := svc.Profile(context.Background(), &models.Session{Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "Budi", user.Name)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	got, ok := tokenExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = tokenExpiry("opaque")
	assert.False(t, ok)
	_, ok = tokenExpiry("")
	assert.False(t, ok)
}

package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionManager(rdb, "sid", time.Hour, false), mr
}

func roundTrip(t *testing.T, sm *SessionManager, cookie *http.Cookie, fn func(*Session)) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	fn(sess)
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(context.Background(), rec, sess))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestFlashSurvivesRedirect(t *testing.T) {
	sm, _ := newTestSessions(t)

	cookie := roundTrip(t, sm, nil, func(s *Session) {
		s.SetUser("7")
		s.AddFlash(FlashMessage{Kind: "success", Message: "Deleted"})
	})
	assert.Equal(t, "sid", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	var popped *FlashMessage
	roundTrip(t, sm, cookie, func(s *Session) {
		assert.Equal(t, "7", s.User())
		popped = s.PopFlash()
	})
	require.NotNil(t, popped)
	assert.Equal(t, "Deleted", popped.Message)

	roundTrip(t, sm, cookie, func(s *Session) {
		assert.Nil(t, s.PopFlash())
	})
}

func TestLoadExpiredSessionStartsFresh(t *testing.T) {
	sm, mr := newTestSessions(t)
	cookie := roundTrip(t, sm, nil, func(s *Session) { s.Set("return", "/expenses") })

	mr.FastForward(2 * time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, cookie.Value, sess.ID)
	assert.Empty(t, sess.Get("return"))
}

func TestLoadFailsOnCorruptPayload(t *testing.T) {
	sm, mr := newTestSessions(t)
	require.NoError(t, mr.Set("bizdesk:session:abc", "{not json"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	_, err := sm.Load(context.Background(), req)
	assert.Error(t, err)
}

func TestCSRFTokenBoundToSession(t *testing.T) {
	sm, _ := newTestSessions(t)
	csrf := NewCSRFManager("secret")

	var token string
	cookie := roundTrip(t, sm, nil, func(s *Session) {
		var err error
		token, err = csrf.EnsureToken(context.Background(), s)
		require.NoError(t, err)
	})

	roundTrip(t, sm, cookie, func(s *Session) {
		again, err := csrf.EnsureToken(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, token, again)
		assert.NoError(t, csrf.VerifyToken(context.Background(), s, token))
		assert.ErrorIs(t, csrf.VerifyToken(context.Background(), s, "forged"), ErrCSRFTokenMismatch)
		assert.ErrorIs(t, csrf.VerifyToken(context.Background(), s, ""), ErrCSRFTokenMissing)
	})
}

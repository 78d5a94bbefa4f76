// internal/adapters/in/http/middleware/session_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueCookie(t *testing.T, m *SessionManager, email, name string, admin bool) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, email, name, admin))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager([]byte("test-key"), false)

	c := issueCookie(t, m, "Jo@Example.com", "Jo", false)
	assert.Equal(t, CookieName, c.Name)
	assert.True(t, c.HttpOnly)

	s, err := m.Verify(c.Value)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", s.Email)
	assert.Equal(t, "Jo", s.Name)
	assert.False(t, s.IsAdmin)
}

func TestSessionTamperRejected(t *testing.T) {
	m := NewSessionManager([]byte("test-key"), false)
	c := issueCookie(t, m, "jo@example.com", "Jo", false)

	// flip the payload, keep the signature
	parts := strings.SplitN(c.Value, ".", 2)
	require.Len(t, parts, 2)
	_, err := m.Verify("eyJmb3JnZWQiOnRydWV9" + "." + parts[1])
	assert.Error(t, err)

	// different signing key
	other := NewSessionManager([]byte("other-key"), false)
	_, err = other.Verify(c.Value)
	assert.Error(t, err)

	_, err = m.Verify("garbage")
	assert.Error(t, err)
}

func TestWithSessionAndGuards(t *testing.T) {
	m := NewSessionManager([]byte("test-key"), false)

	var captured Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = CurrentSession(r)
		w.WriteHeader(http.StatusOK)
	})

	// no cookie: WithSession passes through, RequireUser blocks
	rec := httptest.NewRecorder()
	m.WithSession(RequireUser(inner)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid user cookie
	c := issueCookie(t, m, "jo@example.com", "Jo", false)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	m.WithSession(RequireUser(inner)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jo@example.com", captured.Email)

	// user cookie against an admin route
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	m.WithSession(RequireAdmin(inner)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// admin cookie
	ac := issueCookie(t, m, "root@example.com", "Root", true)
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(ac)
	rec = httptest.NewRecorder()
	m.WithSession(RequireAdmin(inner)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClearExpiresCookie(t *testing.T) {
	m := NewSessionManager([]byte("test-key"), false)

	rec := httptest.NewRecorder()
	m.Clear(rec)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

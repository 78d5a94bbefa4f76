// internal/adapters/in/http/middleware/session.go
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CookieName is the signed session cookie.
const CookieName = "storefront_session"

// sessionTTL bounds how long an issued cookie stays valid.
const sessionTTL = 7 * 24 * time.Hour

// Session is the authenticated principal carried on the request context.
type Session struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
	Expires int64  `json:"exp"`
}

// context key は string を使わず、衝突回避のため独自型を使用（SA1029 対策）
type ctxKey struct{ name string }

var ctxKeySession = ctxKey{name: "session"}

// SessionManager issues and verifies HMAC-signed session cookies.
// Cookie format: base64url(json payload) + "." + base64url(hmac-sha256).
type SessionManager struct {
	key    []byte
	secure bool
}

func NewSessionManager(key []byte, secure bool) *SessionManager {
	return &SessionManager{key: key, secure: secure}
}

// Issue sets a fresh session cookie for the principal.
func (m *SessionManager) Issue(w http.ResponseWriter, email, name string, isAdmin bool) error {
	if m == nil || len(m.key) == 0 {
		return fmt.Errorf("session: signing key not configured")
	}

	s := Session{
		Email:   strings.TrimSpace(strings.ToLower(email)),
		Name:    strings.TrimSpace(name),
		IsAdmin: isAdmin,
		Expires: time.Now().Add(sessionTTL).Unix(),
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(payload) + "." + m.sign(payload)

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m != nil && m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Verify parses and checks a cookie value.
func (m *SessionManager) Verify(token string) (Session, error) {
	var zero Session
	if m == nil || len(m.key) == 0 {
		return zero, fmt.Errorf("session: signing key not configured")
	}

	parts := strings.SplitN(strings.TrimSpace(token), ".", 2)
	if len(parts) != 2 {
		return zero, fmt.Errorf("session: malformed token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return zero, fmt.Errorf("session: bad payload encoding")
	}
	if !hmac.Equal([]byte(m.sign(payload)), []byte(parts[1])) {
		return zero, fmt.Errorf("session: signature mismatch")
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return zero, fmt.Errorf("session: bad payload")
	}
	if s.Expires <= time.Now().Unix() {
		return zero, fmt.Errorf("session: expired")
	}
	if s.Email == "" {
		return zero, fmt.Errorf("session: empty principal")
	}
	return s, nil
}

func (m *SessionManager) sign(payload []byte) string {
	mac := hmac.New(sha256.New, m.key)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// WithSession decodes the session cookie (when present and valid) into the
// request context. It never rejects; RequireUser/RequireAdmin do that.
func (m *SessionManager) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(CookieName); err == nil {
			if s, verr := m.Verify(c.Value); verr == nil {
				r = r.WithContext(withSession(r.Context(), s))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects requests without a valid session.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentSession(r); !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without a valid admin session.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := CurrentSession(r)
		if !ok {
			unauthorized(w)
			return
		}
		if !s.IsAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"success":false,"message":"admin only"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentSession returns the verified session on the request, if any.
func CurrentSession(r *http.Request) (Session, bool) {
	v := r.Context().Value(ctxKeySession)
	if v == nil {
		return Session{}, false
	}
	s, ok := v.(Session)
	if !ok || s.Email == "" {
		return Session{}, false
	}
	return s, true
}

func withSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"sign in required"}`))
}

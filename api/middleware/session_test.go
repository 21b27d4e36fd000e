package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nearbuy-market/storefront-gateway/pkg/config"
)

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Backend:    config.SessionBackendMemory,
		CookieName: "nearbuy_session",
		TokenTTL:   time.Hour,
	}
}

func TestSessionMintsIDWhenAbsent(t *testing.T) {
	t.Parallel()

	var seen string
	handler := Session(sessionConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if seen == "" {
		t.Fatal("no session id in context")
	}
	if got := rec.Header().Get("X-Session-Id"); got != seen {
		t.Fatalf("header = %q, context = %q", got, seen)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "nearbuy_session" || cookies[0].Value != seen {
		t.Fatalf("cookies = %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}

func TestSessionReusesCookie(t *testing.T) {
	t.Parallel()

	var seen string
	handler := Session(sessionConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "nearbuy_session", Value: "sid-123"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "sid-123" {
		t.Fatalf("session id = %q, want sid-123", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("cookie reissued for an existing session")
	}
}

func TestSessionAcceptsHeaderFallback(t *testing.T) {
	t.Parallel()

	var seen string
	handler := Session(sessionConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-Id", "sid-header")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "sid-header" {
		t.Fatalf("session id = %q, want sid-header", seen)
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/pkg/config"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// Session resolves the storefront session for every request. The browser
// carries the id in a cookie; API clients may send the header instead. A
// request without either gets a fresh id minted and set on the response, so
// the very first page load already has a stable session.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := sessionIDFromRequest(r, cfg.CookieName)
			if sid == "" {
				sid = session.NewSessionID()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(cfg.TokenTTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(sessionIDHeader, sid)

			ctx := WithSessionID(r.Context(), sid)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sid)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionIDFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if sid := strings.TrimSpace(cookie.Value); sid != "" {
			return sid
		}
	}
	return strings.TrimSpace(r.Header.Get(sessionIDHeader))
}

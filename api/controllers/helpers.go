package controllers

import (
	"net/http"

	"github.com/nearbuy-market/storefront-gateway/api/middleware"
	"github.com/nearbuy-market/storefront-gateway/internal/session"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
)

// sessionToken resolves the backend token for the request's session. The
// passthrough endpoints use it to attach the caller's credentials; endpoints
// that reach here without a token get a 401 rather than an upstream rejection.
func sessionToken(r *http.Request, sessions session.Store) (string, error) {
	sid := middleware.SessionIDFromContext(r.Context())
	if sid == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session")
	}
	token, err := sessions.Token(r.Context(), sid)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return token, nil
}

// optionalSessionToken returns the session's token when one exists and ""
// otherwise. Read-only endpoints use it so signed-in callers get their
// credentials forwarded without gating anonymous traffic at the edge.
func optionalSessionToken(r *http.Request, sessions session.Store) string {
	sid := middleware.SessionIDFromContext(r.Context())
	if sid == "" || sessions == nil {
		return ""
	}
	token, err := sessions.Token(r.Context(), sid)
	if err != nil {
		return ""
	}
	return token
}

package controllers

import (
	"net/http"

	"github.com/nearbuy-market/storefront-gateway/api/middleware"
	"github.com/nearbuy-market/storefront-gateway/api/responses"
	"github.com/nearbuy-market/storefront-gateway/api/validators"
	"github.com/nearbuy-market/storefront-gateway/internal/auth"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionView struct {
	State auth.State `json:"state"`
	User  any        `json:"user,omitempty"`
}

// AuthLogin exchanges credentials for an authenticated session.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sid := middleware.SessionIDFromContext(ctx)
		if sid == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session middleware missing"))
			return
		}

		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.Login(ctx, sid, payload.Username, payload.Password)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, sessionView{State: auth.StateAuthenticated, User: user})
	}
}

// AuthRegister creates an account and signs the session in.
func AuthRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sid := middleware.SessionIDFromContext(ctx)
		if sid == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session middleware missing"))
			return
		}

		var payload auth.RegisterInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.Register(ctx, sid, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sessionView{State: auth.StateAuthenticated, User: user})
	}
}

// AuthLogout drops the stored backend token for the session.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sid := middleware.SessionIDFromContext(ctx)
		if sid == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session middleware missing"))
			return
		}

		if err := svc.Logout(ctx, sid); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, sessionView{State: auth.StateAnonymous})
	}
}

// AuthSession reports the session's current auth state; the storefront calls
// it on page load to restore a signed-in user.
func AuthSession(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sid := middleware.SessionIDFromContext(ctx)
		if sid == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session middleware missing"))
			return
		}

		user, state, err := svc.Restore(ctx, sid)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view := sessionView{State: state}
		if user != nil {
			view.User = user
		}
		responses.WriteSuccess(w, view)
	}
}

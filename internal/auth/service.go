package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

// State describes where a storefront session sits in the auth lifecycle.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

type backendAuth interface {
	ObtainToken(ctx context.Context, username, password string) (string, error)
	CreateUser(ctx context.Context, input upstream.NewUser) (*upstream.User, error)
	CurrentUser(ctx context.Context, token string) (*upstream.User, error)
}

// Observer is notified when a session's auth state flips; the cart service
// uses it to refresh or discard its cache.
type Observer interface {
	OnLogin(ctx context.Context, sessionID string)
	OnLogout(sessionID string)
}

// Service drives the per-session auth state machine against the backend.
type Service interface {
	Login(ctx context.Context, sessionID, username, password string) (*upstream.User, error)
	Register(ctx context.Context, sessionID string, input RegisterInput) (*upstream.User, error)
	Logout(ctx context.Context, sessionID string) error
	Restore(ctx context.Context, sessionID string) (*upstream.User, State, error)
}

// ServiceParams carries the dependencies for NewService.
type ServiceParams struct {
	Backend  backendAuth
	Sessions session.Store
	Observer Observer
	Logger   *logger.Logger
}

type service struct {
	backend  backendAuth
	sessions session.Store
	observer Observer
	logg     *logger.Logger
}

// NewService builds the auth service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Backend == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &service{
		backend:  params.Backend,
		sessions: params.Sessions,
		observer: params.Observer,
		logg:     params.Logger,
	}, nil
}

// Login exchanges credentials for a token, persists it, and loads the user.
// On any failure the session stays anonymous and no token is retained.
func (s *service) Login(ctx context.Context, sessionID, username, password string) (*upstream.User, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	token, err := s.backend.ObtainToken(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.SaveToken(ctx, sessionID, token); err != nil {
		return nil, err
	}

	user, err := s.backend.CurrentUser(ctx, token)
	if err != nil {
		// The token was accepted moments ago; treat a failed user fetch as a
		// failed login and roll the session back to anonymous.
		if delErr := s.sessions.DeleteToken(ctx, sessionID); delErr != nil && s.logg != nil {
			s.logg.Error(ctx, "auth.login.token_cleanup", delErr)
		}
		return nil, err
	}

	if s.observer != nil {
		s.observer.OnLogin(ctx, sessionID)
	}
	return user, nil
}

// Register creates the account and immediately logs in with the same
// credentials; there is no pending-verification state.
func (s *service) Register(ctx context.Context, sessionID string, input RegisterInput) (*upstream.User, error) {
	if _, err := s.backend.CreateUser(ctx, input.toUpstream()); err != nil {
		return nil, err
	}
	return s.Login(ctx, sessionID, input.Username, input.Password)
}

// Logout discards the stored token. The backend is not called; DRF tokens
// stay valid server-side until they expire.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteToken(ctx, sessionID); err != nil {
		return err
	}
	if s.observer != nil {
		s.observer.OnLogout(sessionID)
	}
	return nil
}

// Restore resolves the session's current auth state on page load. A stored
// token the backend rejects is treated as expired and cleared, so repeated
// restores converge on the anonymous state.
func (s *service) Restore(ctx context.Context, sessionID string) (*upstream.User, State, error) {
	token, err := s.sessions.Token(ctx, sessionID)
	if err != nil {
		return nil, StateAnonymous, err
	}
	if token == "" {
		return nil, StateAnonymous, nil
	}

	user, err := s.backend.CurrentUser(ctx, token)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "auth.restore.token_rejected")
		}
		if delErr := s.sessions.DeleteToken(ctx, sessionID); delErr != nil {
			return nil, StateAnonymous, delErr
		}
		if s.observer != nil {
			s.observer.OnLogout(sessionID)
		}
		return nil, StateAnonymous, nil
	}

	return user, StateAuthenticated, nil
}

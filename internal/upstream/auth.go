package upstream

import (
	"context"
	"net/http"
	"strings"

	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// ObtainToken exchanges credentials for a session token.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/token-auth/", "", nil, tokenRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUpstream, "token missing from auth response")
	}
	return resp.Token, nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, input NewUser) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/users/", "", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the account bound to the supplied token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session token")
	}

	var user User
	if err := c.do(ctx, http.MethodGet, "/api/users/me/", token, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

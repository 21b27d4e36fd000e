package upstream

import (
	"context"
	"net/http"
)

// RegisterRetailer creates a retailer profile for the authenticated user.
func (c *Client) RegisterRetailer(ctx context.Context, token string, input RetailerProfileInput) (*RetailerProfile, error) {
	var profile RetailerProfile
	if err := c.do(ctx, http.MethodPost, "/api/retailers/", token, nil, input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// MyRetailerProfile returns the authenticated retailer's own profile.
func (c *Client) MyRetailerProfile(ctx context.Context, token string) (*RetailerProfile, error) {
	var profile RetailerProfile
	if err := c.do(ctx, http.MethodGet, "/api/retailers/my-profile/", token, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateRetailerProfile replaces the authenticated retailer's profile.
func (c *Client) UpdateRetailerProfile(ctx context.Context, token string, input RetailerProfileInput) (*RetailerProfile, error) {
	var profile RetailerProfile
	if err := c.do(ctx, http.MethodPut, "/api/retailers/my-profile/", token, nil, input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// ListOrders returns the authenticated user's order history.
func (c *Client) ListOrders(ctx context.Context, token string) ([]Order, error) {
	var page Page[Order]
	if err := c.do(ctx, http.MethodGet, "/api/orders/", token, nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetOrder returns one order by id.
func (c *Client) GetOrder(ctx context.Context, token string, id int64) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/api/orders/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, token, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder places an order from the current cart contents.
func (c *Client) CreateOrder(ctx context.Context, token string, input OrderInput) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/api/orders/", token, nil, input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

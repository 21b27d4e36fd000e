package upstream

import (
	"context"
	"fmt"
	"net/http"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ListCartItems returns the authenticated user's full cart.
func (c *Client) ListCartItems(ctx context.Context, token string) (*Page[CartItem], error) {
	var page Page[CartItem]
	if err := c.do(ctx, http.MethodGet, "/api/cart-items/", token, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddCartItem creates a new cart line. The backend does not merge duplicate
// products; every add yields a fresh line item.
func (c *Client) AddCartItem(ctx context.Context, token string, productID int64, quantity int) (*CartItem, error) {
	var item CartItem
	payload := addCartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/api/cart-items/", token, nil, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem replaces the quantity of an existing line.
func (c *Client) UpdateCartItem(ctx context.Context, token string, itemID int64, quantity int) (*CartItem, error) {
	var item CartItem
	path := fmt.Sprintf("/api/cart-items/%d/", itemID)
	if err := c.do(ctx, http.MethodPut, path, token, nil, updateCartItemRequest{Quantity: quantity}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes one cart line.
func (c *Client) RemoveCartItem(ctx context.Context, token string, itemID int64) error {
	path := fmt.Sprintf("/api/cart-items/%d/", itemID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil, nil)
}

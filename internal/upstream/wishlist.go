package upstream

import (
	"context"
	"fmt"
	"net/http"
)

type addWishlistRequest struct {
	Product int64 `json:"product"`
}

// ListWishlist returns the authenticated user's saved products.
func (c *Client) ListWishlist(ctx context.Context, token string) ([]WishlistItem, error) {
	var page Page[WishlistItem]
	if err := c.do(ctx, http.MethodGet, "/api/wishlists/", token, nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// AddWishlistItem saves a product to the wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, token string, productID int64) (*WishlistItem, error) {
	var item WishlistItem
	if err := c.do(ctx, http.MethodPost, "/api/wishlists/", token, nil, addWishlistRequest{Product: productID}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveWishlistItem deletes one wishlist entry.
func (c *Client) RemoveWishlistItem(ctx context.Context, token string, itemID int64) error {
	path := fmt.Sprintf("/api/wishlists/%d/", itemID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil, nil)
}

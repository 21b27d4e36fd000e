package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Sort orders accepted by the product listing.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortDiscount  = "discount"
)

// ValidSort reports whether value is one of the accepted sort orders.
func ValidSort(value string) bool {
	switch value {
	case SortPriceAsc, SortPriceDesc, SortNewest, SortDiscount:
		return true
	}
	return false
}

// ProductQuery holds the supported catalog filters; zero values are omitted.
// Field names mirror the marketplace's query parameters, so callers validate
// before handing a query to the client.
type ProductQuery struct {
	Category     string
	Retailer     int64
	Search       string
	Featured     bool
	ExpiringSoon bool
	MinPrice     string
	MaxPrice     string
	SortBy       string
}

func (q ProductQuery) values() url.Values {
	values := url.Values{}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Retailer > 0 {
		values.Set("retailer", strconv.FormatInt(q.Retailer, 10))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Featured {
		values.Set("featured", "true")
	}
	if q.ExpiringSoon {
		values.Set("expiring_soon", "true")
	}
	if q.MinPrice != "" {
		values.Set("min_price", q.MinPrice)
	}
	if q.MaxPrice != "" {
		values.Set("max_price", q.MaxPrice)
	}
	if q.SortBy != "" {
		values.Set("sort_by", q.SortBy)
	}
	return values
}

// ListCategories returns every product category.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var page Page[Category]
	if err := c.do(ctx, http.MethodGet, "/api/categories/", "", nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetCategory returns a single category by id.
func (c *Client) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var category Category
	path := fmt.Sprintf("/api/categories/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListProducts returns the catalog page matching the supplied filters.
func (c *Client) ListProducts(ctx context.Context, query ProductQuery) (*Page[Product], error) {
	var page Page[Product]
	if err := c.do(ctx, http.MethodGet, "/api/products/", "", query.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProduct returns a single listing.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/api/products/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListRetailerProducts returns the catalog owned by one retailer.
func (c *Client) ListRetailerProducts(ctx context.Context, retailerID int64) ([]Product, error) {
	var page Page[Product]
	path := fmt.Sprintf("/api/products/retailer/%d/", retailerID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// CreateProduct publishes a new listing on behalf of the authenticated retailer.
func (c *Client) CreateProduct(ctx context.Context, token string, input ProductInput) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, "/api/products/", token, nil, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces an existing listing.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, input ProductInput) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/api/products/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, token, nil, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a listing.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/api/products/%d/", id)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil, nil)
}

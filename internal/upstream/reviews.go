package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListProductReviews returns the reviews filed against one product. The
// marketplace requires authentication even for reads, so the caller's token
// travels with the request.
func (c *Client) ListProductReviews(ctx context.Context, token string, productID int64) ([]Review, error) {
	query := url.Values{}
	query.Set("product", strconv.FormatInt(productID, 10))

	var page Page[Review]
	if err := c.do(ctx, http.MethodGet, "/api/reviews/", token, query, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// CreateReview files a review as the authenticated user.
func (c *Client) CreateReview(ctx context.Context, token string, input ReviewInput) (*Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodPost, "/api/reviews/", token, nil, input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

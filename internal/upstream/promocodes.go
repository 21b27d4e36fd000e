package upstream

import (
	"context"
	"net/http"
	"strings"

	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/shopspring/decimal"
)

type promoValidateRequest struct {
	Code      string          `json:"code"`
	CartTotal decimal.Decimal `json:"cart_total"`
}

// ValidatePromoCode checks a promo code against the supplied cart total.
func (c *Client) ValidatePromoCode(ctx context.Context, token, code string, cartTotal decimal.Decimal) (*PromoValidation, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo code is required")
	}

	var result PromoValidation
	payload := promoValidateRequest{Code: trimmed, CartTotal: cartTotal}
	if err := c.do(ctx, http.MethodPost, "/api/promo-codes/validate/", token, nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

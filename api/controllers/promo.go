package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/nearbuy-market/storefront-gateway/api/responses"
	"github.com/nearbuy-market/storefront-gateway/api/validators"
	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

type promoBackend interface {
	ValidatePromoCode(ctx context.Context, token, code string, cartTotal decimal.Decimal) (*upstream.PromoValidation, error)
}

type validatePromoPayload struct {
	Code      string `json:"code" validate:"required,max=50"`
	CartTotal string `json:"cart_total" validate:"required"`
}

// PromoValidate checks a promo code against the caller's cart total.
func PromoValidate(backend promoBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promo validation unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload validatePromoPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		total, err := decimal.NewFromString(payload.CartTotal)
		if err != nil || total.IsNegative() {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart total must be a non-negative decimal"))
			return
		}

		result, err := backend.ValidatePromoCode(ctx, token, payload.Code, total)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/nearbuy-market/storefront-gateway/api/middleware"
	"github.com/nearbuy-market/storefront-gateway/api/responses"
	"github.com/nearbuy-market/storefront-gateway/api/validators"
	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

type ordersBackend interface {
	ListOrders(ctx context.Context, token string) ([]upstream.Order, error)
	GetOrder(ctx context.Context, token string, id int64) (*upstream.Order, error)
	CreateOrder(ctx context.Context, token string, input upstream.OrderInput) (*upstream.Order, error)
}

type createOrderPayload struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	ShippingCost    string `json:"shipping_cost,omitempty"`
	PromoCode       string `json:"promo_code,omitempty"`
}

// OrderList returns the caller's order history.
func OrderList(backend ordersBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orders, err := backend.ListOrders(ctx, token)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// OrderFetch returns one order by id.
func OrderFetch(backend ordersBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := validators.ParseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := backend.GetOrder(ctx, token, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type cartRefresher interface {
	Refresh(ctx context.Context, sessionID string) ([]upstream.CartItem, error)
}

// OrderCreate places an order from the caller's cart. The backend consumes
// the cart server-side; the storefront refreshes its cart view afterwards.
func OrderCreate(backend ordersBackend, sessions session.Store, carts cartRefresher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createOrderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := upstream.OrderInput{
			ShippingAddress: payload.ShippingAddress,
			PromoCode:       payload.PromoCode,
		}
		if payload.ShippingCost != "" {
			cost, err := decimal.NewFromString(payload.ShippingCost)
			if err != nil || cost.IsNegative() {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shipping cost must be a non-negative decimal"))
				return
			}
			input.ShippingCost = cost
		}

		order, err := backend.CreateOrder(ctx, token, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if carts != nil {
			if sid := middleware.SessionIDFromContext(ctx); sid != "" {
				if _, err := carts.Refresh(ctx, sid); err != nil && logg != nil {
					logg.Error(ctx, "order.cart_refresh", err)
				}
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

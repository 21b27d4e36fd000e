package controllers

import (
	"net/http"

	"github.com/nearbuy-market/storefront-gateway/api/middleware"
	"github.com/nearbuy-market/storefront-gateway/api/responses"
	"github.com/nearbuy-market/storefront-gateway/api/validators"
	"github.com/nearbuy-market/storefront-gateway/internal/cart"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

type addCartItemPayload struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type updateCartItemPayload struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type cartView struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

func requireCartSession(w http.ResponseWriter, r *http.Request, svc cart.Service, logg *logger.Logger) (string, bool) {
	ctx := r.Context()
	if svc == nil {
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return "", false
	}
	sid := middleware.SessionIDFromContext(ctx)
	if sid == "" {
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session middleware missing"))
		return "", false
	}
	return sid, true
}

func writeCart(w http.ResponseWriter, r *http.Request, svc cart.Service, sid string) {
	items := svc.Items(r.Context(), sid)
	responses.WriteSuccess(w, cartView{Items: items, Count: svc.Count(r.Context(), sid)})
}

// CartFetch re-reads the cart from the backend and returns the fresh view.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		if _, err := svc.Refresh(r.Context(), sid); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, svc, sid)
	}
}

// CartCount serves the badge counter from the cached cart without touching
// the backend.
func CartCount(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, map[string]int{"count": svc.Count(r.Context(), sid)})
	}
}

// CartAdd puts a product into the cart and returns the refreshed view.
func CartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Add(r.Context(), sid, payload.ProductID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, svc, sid)
	}
}

// CartUpdate changes the quantity of one cart line.
func CartUpdate(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		itemID, err := validators.ParseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateQuantity(r.Context(), sid, itemID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, svc, sid)
	}
}

// CartRemove deletes one cart line.
func CartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		itemID, err := validators.ParseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), sid, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, svc, sid)
	}
}

// CartClear empties the cart. A partial failure still reports an error while
// the returned view reflects whatever survived.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		if err := svc.Clear(r.Context(), sid); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, svc, sid)
	}
}

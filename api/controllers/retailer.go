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

type retailerBackend interface {
	RegisterRetailer(ctx context.Context, token string, input upstream.RetailerProfileInput) (*upstream.RetailerProfile, error)
	MyRetailerProfile(ctx context.Context, token string) (*upstream.RetailerProfile, error)
	UpdateRetailerProfile(ctx context.Context, token string, input upstream.RetailerProfileInput) (*upstream.RetailerProfile, error)
	CreateProduct(ctx context.Context, token string, input upstream.ProductInput) (*upstream.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, input upstream.ProductInput) (*upstream.Product, error)
	DeleteProduct(ctx context.Context, token string, id int64) error
}

type retailerProfilePayload struct {
	CompanyName     string `json:"company_name" validate:"required,max=255"`
	CompanyAddress  string `json:"company_address" validate:"required"`
	BusinessLicense string `json:"business_license" validate:"required,max=100"`
}

type productPayload struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Description   string  `json:"description" validate:"required"`
	Price         string  `json:"price" validate:"required"`
	OriginalPrice string  `json:"original_price" validate:"required"`
	ExpiryDate    string  `json:"expiry_date" validate:"required"`
	Category      int64   `json:"category" validate:"required,gt=0"`
	Stock         int     `json:"stock" validate:"min=0"`
	Image         *string `json:"image,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

func (p productPayload) toInput() (upstream.ProductInput, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil || price.IsNegative() {
		return upstream.ProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be a non-negative decimal")
	}
	original, err := decimal.NewFromString(p.OriginalPrice)
	if err != nil || original.IsNegative() {
		return upstream.ProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "original price must be a non-negative decimal")
	}
	if price.GreaterThan(original) {
		return upstream.ProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "discounted price cannot exceed the original price")
	}
	return upstream.ProductInput{
		Name:          p.Name,
		Description:   p.Description,
		Price:         price,
		OriginalPrice: original,
		ExpiryDate:    p.ExpiryDate,
		Category:      p.Category,
		Stock:         p.Stock,
		Image:         p.Image,
		IsActive:      p.IsActive,
	}, nil
}

// RetailerRegister creates the seller profile for the signed-in user.
func RetailerRegister(backend retailerBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload retailerProfilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := backend.RegisterRetailer(ctx, token, upstream.RetailerProfileInput(payload))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// RetailerProfileFetch returns the caller's seller profile.
func RetailerProfileFetch(backend retailerBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := backend.MyRetailerProfile(ctx, token)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// RetailerProfileUpdate edits the caller's seller profile.
func RetailerProfileUpdate(backend retailerBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload retailerProfilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := backend.UpdateRetailerProfile(ctx, token, upstream.RetailerProfileInput(payload))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// RetailerProductCreate lists a new product for the caller's shop.
func RetailerProductCreate(backend retailerBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := backend.CreateProduct(ctx, token, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// RetailerProductUpdate edits one of the caller's products.
func RetailerProductUpdate(backend retailerBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := backend.UpdateProduct(ctx, token, productID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// RetailerProductDelete removes one of the caller's products.
func RetailerProductDelete(backend retailerBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := backend.DeleteProduct(ctx, token, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nearbuy-market/storefront-gateway/api/responses"
	"github.com/nearbuy-market/storefront-gateway/api/validators"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

type catalogBackend interface {
	ListCategories(ctx context.Context) ([]upstream.Category, error)
	GetCategory(ctx context.Context, id int64) (*upstream.Category, error)
	ListProducts(ctx context.Context, query upstream.ProductQuery) (*upstream.Page[upstream.Product], error)
	GetProduct(ctx context.Context, id int64) (*upstream.Product, error)
	ListRetailerProducts(ctx context.Context, retailerID int64) ([]upstream.Product, error)
}

// CategoryList returns all product categories.
func CategoryList(backend catalogBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		categories, err := backend.ListCategories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// CategoryFetch returns one category by id.
func CategoryFetch(backend catalogBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "categoryId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, err := backend.GetCategory(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// ProductList returns the paginated listing with optional filters.
func ProductList(backend catalogBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query, err := parseProductQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := backend.ListProducts(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// parseProductQuery maps the listing's query string onto the marketplace
// filters, rejecting values the backend would otherwise ignore silently.
func parseProductQuery(r *http.Request) (upstream.ProductQuery, error) {
	q := r.URL.Query()
	query := upstream.ProductQuery{
		Category:     strings.TrimSpace(q.Get("category")),
		Search:       strings.TrimSpace(q.Get("search")),
		Featured:     q.Get("featured") == "true",
		ExpiringSoon: q.Get("expiring_soon") == "true",
	}

	if raw := strings.TrimSpace(q.Get("retailer")); raw != "" {
		retailer, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || retailer <= 0 {
			return upstream.ProductQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "retailer must be a positive integer")
		}
		query.Retailer = retailer
	}

	if raw := strings.TrimSpace(q.Get("min_price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil || price.IsNegative() {
			return upstream.ProductQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "min_price must be a non-negative decimal")
		}
		query.MinPrice = price.String()
	}
	if raw := strings.TrimSpace(q.Get("max_price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil || price.IsNegative() {
			return upstream.ProductQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "max_price must be a non-negative decimal")
		}
		query.MaxPrice = price.String()
	}

	if sortBy := strings.TrimSpace(q.Get("sort_by")); sortBy != "" {
		if !upstream.ValidSort(sortBy) {
			return upstream.ProductQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "sort_by must be one of price_asc, price_desc, newest or discount")
		}
		query.SortBy = sortBy
	}

	return query, nil
}

// ProductFetch returns one product by id.
func ProductFetch(backend catalogBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := backend.GetProduct(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// RetailerProductList returns the public listing of one retailer's products.
func RetailerProductList(backend catalogBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		retailerID, err := validators.ParseIDParam(r, "retailerId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products, err := backend.ListRetailerProducts(ctx, retailerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

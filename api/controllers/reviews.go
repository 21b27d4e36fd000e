package controllers

import (
	"context"
	"net/http"

	"github.com/nearbuy-market/storefront-gateway/api/responses"
	"github.com/nearbuy-market/storefront-gateway/api/validators"
	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

type reviewsBackend interface {
	ListProductReviews(ctx context.Context, token string, productID int64) ([]upstream.Review, error)
	CreateReview(ctx context.Context, token string, input upstream.ReviewInput) (*upstream.Review, error)
}

type createReviewPayload struct {
	Product int64  `json:"product" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=2000"`
}

// ReviewList returns reviews for one product. The marketplace rejects
// anonymous review reads, so the session's token is attached when one exists
// and the upstream 401 surfaces unchanged when it does not.
func ReviewList(backend reviewsBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews unavailable"))
			return
		}

		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reviews, err := backend.ListProductReviews(ctx, optionalSessionToken(r, sessions), productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, reviews)
	}
}

// ReviewCreate posts a star rating with an optional comment.
func ReviewCreate(backend reviewsBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createReviewPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		review, err := backend.CreateReview(ctx, token, upstream.ReviewInput{
			Product: payload.Product,
			Rating:  payload.Rating,
			Comment: payload.Comment,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}
